package ai

import (
	"encoding/json"
	"strings"

	"github.com/thanush/resumai/internal/schemas"
	"github.com/thanush/resumai/internal/types"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// extractJSONSpan returns the first top-level {...} span in text, or "" when
// no braces are present. Fallback path for responses that surround the JSON
// with prose.
func extractJSONSpan(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// ParseAnalysis parses raw model output into a ResumeAnalysis. It first tries
// the whole (cleaned) body as JSON, then the first top-level {...} span. The
// parsed document is checked against the ResumeAnalysis schema and all score
// fields are clamped to [0,100].
func ParseAnalysis(raw string) (*types.ResumeAnalysis, error) {
	cleaned := CleanJSONBlock(raw)

	candidate := cleaned
	var analysis types.ResumeAnalysis
	if err := json.Unmarshal([]byte(candidate), &analysis); err != nil {
		candidate = extractJSONSpan(cleaned)
		if candidate == "" {
			return nil, newMalformedResponseError(raw, err)
		}
		analysis = types.ResumeAnalysis{}
		if err := json.Unmarshal([]byte(candidate), &analysis); err != nil {
			return nil, newMalformedResponseError(raw, err)
		}
	}

	if err := schemas.ValidateAnalysisJSON(candidate); err != nil {
		return nil, newMalformedResponseError(raw, err)
	}

	analysis.Clamp()
	return &analysis, nil
}
