package ai

import (
	"errors"
	"fmt"
)

// ErrMissingCredential indicates no API key is configured for the AI endpoint.
var ErrMissingCredential = errors.New("GEMINI_API_KEY is not configured")

// TransportError represents a network or HTTP-level failure talking to the
// AI endpoint.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ai transport error during %s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// rawPreviewLimit caps how much raw model output a MalformedResponseError
// carries for diagnostics.
const rawPreviewLimit = 500

// MalformedResponseError indicates the model's output could not be parsed
// into a ResumeAnalysis. Raw holds up to the first 500 characters of the
// response for diagnostics.
type MalformedResponseError struct {
	Raw   string
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("failed to parse AI response as JSON: %v (raw: %q)", e.Cause, e.Raw)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

func newMalformedResponseError(raw string, cause error) *MalformedResponseError {
	if len(raw) > rawPreviewLimit {
		raw = raw[:rawPreviewLimit]
	}
	return &MalformedResponseError{Raw: raw, Cause: cause}
}
