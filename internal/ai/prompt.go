package ai

import (
	"fmt"
	"strings"
)

// imageInstruction is the fixed instruction sent alongside an uploaded resume
// image.
const imageInstruction = "Extract all text from this resume. This is for high-stakes ATS analysis. Ensure no characters or formatting clues are missed."

// analysisPrompt builds the fixed recruiter/ATS audit prompt. The resume text
// is embedded verbatim inside a delimited block and the response is required
// to be JSON matching the ResumeAnalysis shape exactly.
func analysisPrompt(resumeText string) string {
	var sb strings.Builder

	sb.WriteString(`Act as a brutal, high-stakes executive recruiter and ATS specialist.

The job market is extremely saturated and competitive. Do NOT be sympathetic. If the resume is weak, say so. If the achievements lack data, point it out.

Provide a detailed audit including:
1. advisorNote: A direct, professional "Recruiter's Audit". Explain why they are or aren't getting interviews in this market. Be blunt and actionable.
2. summary: A technical strength assessment.
3. skills: Verifiable core competencies.
4. job_matches: Roles where they actually stand a chance (suggest 5-7).
5. improvements: Critical fixes required to survive ATS filters.
6. Data points: score (Market impact 0-100), atsScore (Technical parsing health 0-100), missingSkills (Market gaps), and 3 improved versions of current bullet points using the Google XYZ formula (Accomplished [X] as measured by [Y], by doing [Z]).

Resume:
"""
`)
	sb.WriteString(resumeText)
	sb.WriteString(`
"""

Return ONLY valid JSON with this exact structure:
{
  "advisorNote": "string",
  "summary": "string",
  "skills": ["string"],
  "missingSkills": ["string"],
  "job_matches": [{"role": "string", "fit_score": number, "reason": "string"}],
  "improvements": [{"issue": "string", "suggestion": "string", "example_fix": "string"}],
  "score": number,
  "atsScore": number,
  "improvedBulletPoints": [{"original": "string", "improved": "string"}],
  "atsAnalysis": {
    "formattingStatus": "string",
    "formattingFeedback": "string",
    "keywordDensityScore": number,
    "standardSectionsFound": ["string"],
    "missingStandardSections": ["string"]
  }
}`)

	return sb.String()
}

// pingPrompt is used by Ping to verify endpoint connectivity.
func pingPrompt() string {
	return fmt.Sprintf("Say '%s'", pingMarker)
}

const pingMarker = "API test successful"
