package ai

import "github.com/thanush/resumai/internal/types"

// MockAnalysis returns the canned substitute analysis used when the AI engine
// is unreachable, times out, or no credential is configured. The caller
// decides when to substitute it; the client itself never falls back.
func MockAnalysis() *types.ResumeAnalysis {
	return &types.ResumeAnalysis{
		AdvisorNote:   "Local dev analysis (mock). The real AI engine was unreachable or timed out.",
		Summary:       "This is a mocked summary for local development.",
		Skills:        []string{"communication", "problem-solving"},
		MissingSkills: []string{"domain-specific skill"},
		JobMatches: []types.JobMatch{
			{Role: "Developer", FitScore: 50, Reason: "Transferable skills"},
		},
		Improvements: []types.Improvement{
			{Issue: "Add metrics", Suggestion: "Quantify achievements", ExampleFix: "Increased revenue by 12%"},
		},
		Score:    50,
		ATSScore: 55,
		ImprovedBulletPoints: []types.BulletPoint{
			{Original: "Old bullet", Improved: "Accomplished X as measured by Y by doing Z"},
		},
		ATSAnalysis: types.ATSAnalysis{
			FormattingStatus:        types.FormattingWarning,
			FormattingFeedback:      "Some sections missing for ATS parsing.",
			KeywordDensityScore:     40,
			StandardSectionsFound:   []string{"experience", "education"},
			MissingStandardSections: []string{"certifications"},
		},
	}
}
