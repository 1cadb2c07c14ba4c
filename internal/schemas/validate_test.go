package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAnalysisJSON = `{
	"advisorNote": "note",
	"summary": "summary",
	"skills": ["Go"],
	"missingSkills": [],
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

func TestValidateAnalysisJSON_Valid(t *testing.T) {
	assert.NoError(t, ValidateAnalysisJSON(validAnalysisJSON))
}

func TestValidateAnalysisJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing required field",
			doc:  `{"summary": "only a summary"}`,
		},
		{
			name: "score is a string",
			doc: `{
				"advisorNote": "n", "summary": "s", "skills": [], "missingSkills": [],
				"job_matches": [], "improvements": [], "score": "72", "atsScore": 64,
				"improvedBulletPoints": [],
				"atsAnalysis": {"formattingStatus": "Good", "formattingFeedback": "f",
					"keywordDensityScore": 1, "standardSectionsFound": [], "missingStandardSections": []}
			}`,
		},
		{
			name: "unknown formatting status",
			doc: `{
				"advisorNote": "n", "summary": "s", "skills": [], "missingSkills": [],
				"job_matches": [], "improvements": [], "score": 72, "atsScore": 64,
				"improvedBulletPoints": [],
				"atsAnalysis": {"formattingStatus": "Excellent", "formattingFeedback": "f",
					"keywordDensityScore": 1, "standardSectionsFound": [], "missingStandardSections": []}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnalysisJSON(tt.doc)
			require.Error(t, err)

			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}
