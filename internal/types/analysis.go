// Package types provides type definitions for structured data used throughout the ResumAI system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// FormattingStatus classifies how well a resume survives automated parsing.
type FormattingStatus string

// Formatting status values reported by the ATS audit.
const (
	FormattingGood     FormattingStatus = "Good"
	FormattingWarning  FormattingStatus = "Warning"
	FormattingCritical FormattingStatus = "Critical"
)

// JobMatch is a role the candidate plausibly qualifies for.
type JobMatch struct {
	Role     string `json:"role"`
	FitScore int    `json:"fit_score"`
	Reason   string `json:"reason"`
}

// Improvement is a single actionable fix for the resume.
type Improvement struct {
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	ExampleFix string `json:"example_fix,omitempty"`
}

// BulletPoint pairs an original resume bullet with its rewritten version.
type BulletPoint struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
}

// ATSAnalysis holds the machine-parseability portion of the audit.
type ATSAnalysis struct {
	FormattingStatus        FormattingStatus `json:"formattingStatus"`
	FormattingFeedback      string           `json:"formattingFeedback"`
	KeywordDensityScore     int              `json:"keywordDensityScore"`
	StandardSectionsFound   []string         `json:"standardSectionsFound"`
	MissingStandardSections []string         `json:"missingStandardSections"`
}

// ResumeAnalysis is the full audit produced for one resume submission.
// Field names match the JSON contract with the AI endpoint exactly.
type ResumeAnalysis struct {
	AdvisorNote          string        `json:"advisorNote"`
	Summary              string        `json:"summary"`
	Skills               []string      `json:"skills"`
	MissingSkills        []string      `json:"missingSkills"`
	JobMatches           []JobMatch    `json:"job_matches"`
	Improvements         []Improvement `json:"improvements"`
	Score                int           `json:"score"`
	ATSScore             int           `json:"atsScore"`
	ImprovedBulletPoints []BulletPoint `json:"improvedBulletPoints"`
	ATSAnalysis          ATSAnalysis   `json:"atsAnalysis"`
}

// clampScore bounds a score to the [0,100] range.
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Clamp normalizes all score fields to [0,100]. Records accepted into history
// always pass through here, so an out-of-range model response is stored at the
// nearest bound rather than rejected.
func (a *ResumeAnalysis) Clamp() {
	a.Score = clampScore(a.Score)
	a.ATSScore = clampScore(a.ATSScore)
	a.ATSAnalysis.KeywordDensityScore = clampScore(a.ATSAnalysis.KeywordDensityScore)
	for i := range a.JobMatches {
		a.JobMatches[i].FitScore = clampScore(a.JobMatches[i].FitScore)
	}
}

// HistoryItem is one saved analysis in a user's history.
type HistoryItem struct {
	ID         uuid.UUID      `json:"id"`
	UserID     string         `json:"userId"`
	Timestamp  time.Time      `json:"timestamp"`
	ResumeText string         `json:"resumeText"`
	Analysis   ResumeAnalysis `json:"analysis"`
}
