package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanush/resumai/internal/types"
)

const analysisBody = `{
	"advisorNote": "note",
	"summary": "strong infra background",
	"skills": ["Go", "Terraform"],
	"missingSkills": ["Kubernetes"],
	"job_matches": [{"role": "SRE", "fit_score": 80, "reason": "infra"}],
	"improvements": [{"issue": "vague", "suggestion": "quantify"}],
	"score": 72,
	"atsScore": 64,
	"improvedBulletPoints": [{"original": "did x", "improved": "delivered x"}],
	"atsAnalysis": {
		"formattingStatus": "Good",
		"formattingFeedback": "clean layout",
		"keywordDensityScore": 55,
		"standardSectionsFound": ["Experience"],
		"missingStandardSections": []
	}
}`

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bare JSON", analysisBody},
		{"fenced json block", "```json\n" + analysisBody + "\n```"},
		{"fenced block without language", "```\n" + analysisBody + "\n```"},
		{"JSON inside prose", "Here is the analysis you asked for:\n" + analysisBody + "\nLet me know if you need more."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := ParseAnalysis(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, 72, analysis.Score)
			assert.Equal(t, 64, analysis.ATSScore)
			assert.Equal(t, "strong infra background", analysis.Summary)
			require.Len(t, analysis.JobMatches, 1)
			assert.Equal(t, "SRE", analysis.JobMatches[0].Role)
		})
	}
}

func TestParseAnalysis_ClampsScores(t *testing.T) {
	raw := strings.Replace(analysisBody, `"score": 72`, `"score": 150`, 1)

	analysis, err := ParseAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, 100, analysis.Score)
}

func TestParseAnalysis_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no JSON at all", "I could not process this resume, please try again."},
		{"unbalanced braces", `{"summary": "truncated`},
		{"valid JSON wrong shape", `{"summary": "only a summary"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysis(tt.raw)
			require.Error(t, err)

			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.raw, malformed.Raw)
		})
	}
}

func TestParseAnalysis_RawPreviewTruncated(t *testing.T) {
	raw := "not json " + strings.Repeat("x", 2000)

	_, err := ParseAnalysis(raw)
	require.Error(t, err)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Len(t, malformed.Raw, 500)
	assert.True(t, strings.HasPrefix(raw, malformed.Raw))
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.in))
		})
	}
}

func TestMockAnalysis(t *testing.T) {
	mock := MockAnalysis()

	assert.Equal(t, 50, mock.Score)
	assert.Equal(t, 55, mock.ATSScore)
	assert.Equal(t, types.FormattingWarning, mock.ATSAnalysis.FormattingStatus)
	assert.NotEmpty(t, mock.AdvisorNote)
	assert.NotEmpty(t, mock.JobMatches)
}
