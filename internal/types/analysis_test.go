package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeAnalysis_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		analysis ResumeAnalysis
		check    func(t *testing.T, a ResumeAnalysis)
	}{
		{
			name:     "score above range is clamped to 100",
			analysis: ResumeAnalysis{Score: 150, ATSScore: 55},
			check: func(t *testing.T, a ResumeAnalysis) {
				assert.Equal(t, 100, a.Score)
				assert.Equal(t, 55, a.ATSScore)
			},
		},
		{
			name:     "negative scores are clamped to 0",
			analysis: ResumeAnalysis{Score: -5, ATSScore: -1},
			check: func(t *testing.T, a ResumeAnalysis) {
				assert.Equal(t, 0, a.Score)
				assert.Equal(t, 0, a.ATSScore)
			},
		},
		{
			name: "fit scores and keyword density are clamped too",
			analysis: ResumeAnalysis{
				Score: 70,
				JobMatches: []JobMatch{
					{Role: "SRE", FitScore: 120},
					{Role: "Backend", FitScore: 85},
				},
				ATSAnalysis: ATSAnalysis{KeywordDensityScore: 101},
			},
			check: func(t *testing.T, a ResumeAnalysis) {
				assert.Equal(t, 100, a.JobMatches[0].FitScore)
				assert.Equal(t, 85, a.JobMatches[1].FitScore)
				assert.Equal(t, 100, a.ATSAnalysis.KeywordDensityScore)
			},
		},
		{
			name:     "in-range values are untouched",
			analysis: ResumeAnalysis{Score: 0, ATSScore: 100},
			check: func(t *testing.T, a ResumeAnalysis) {
				assert.Equal(t, 0, a.Score)
				assert.Equal(t, 100, a.ATSScore)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.analysis.Clamp()
			tt.check(t, tt.analysis)
		})
	}
}

func TestResumeAnalysis_JSONFieldNames(t *testing.T) {
	raw := `{
		"advisorNote": "note",
		"summary": "a summary",
		"skills": ["Go"],
		"missingSkills": ["Kubernetes"],
		"job_matches": [{"role": "SRE", "fit_score": 80, "reason": "infra work"}],
		"improvements": [{"issue": "vague", "suggestion": "quantify", "example_fix": "cut latency 30%"}],
		"score": 72,
		"atsScore": 64,
		"improvedBulletPoints": [{"original": "did x", "improved": "delivered x"}],
		"atsAnalysis": {
			"formattingStatus": "Warning",
			"formattingFeedback": "two columns",
			"keywordDensityScore": 40,
			"standardSectionsFound": ["Experience"],
			"missingStandardSections": ["Education"]
		}
	}`

	var a ResumeAnalysis
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	assert.Equal(t, "note", a.AdvisorNote)
	assert.Equal(t, 72, a.Score)
	assert.Equal(t, 64, a.ATSScore)
	require.Len(t, a.JobMatches, 1)
	assert.Equal(t, 80, a.JobMatches[0].FitScore)
	require.Len(t, a.Improvements, 1)
	assert.Equal(t, "cut latency 30%", a.Improvements[0].ExampleFix)
	assert.Equal(t, FormattingWarning, a.ATSAnalysis.FormattingStatus)
	assert.Equal(t, 40, a.ATSAnalysis.KeywordDensityScore)
	assert.Equal(t, []string{"Education"}, a.ATSAnalysis.MissingStandardSections)
}

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Email: "a@example.com", Password: "secret1"}, false},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "secret1"}, true},
		{"short password", RegisterRequest{Email: "a@example.com", Password: "12345"}, true},
		{"missing email", RegisterRequest{Password: "secret1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
