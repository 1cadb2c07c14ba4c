// Package ai provides the client for the external generative-text service
// that scores resumes and OCRs resume images.
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/thanush/resumai/internal/types"
)

// DefaultModel is the generative model used for analysis and image OCR.
const DefaultModel = "gemini-2.5-flash"

// Client is an abstraction over the generative AI provider. Callers inject it
// so tests can substitute a deterministic stub.
type Client interface {
	// Analyze audits resume text and returns the structured analysis.
	Analyze(ctx context.Context, resumeText string) (*types.ResumeAnalysis, error)
	// ExtractTextFromImage runs OCR on a base64-encoded resume image.
	ExtractTextFromImage(ctx context.Context, base64Data, mimeType string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client. It fails with
// ErrMissingCredential when apiKey is empty.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Analyze sends the fixed recruiter audit prompt with the resume embedded and
// parses the JSON response. Errors are never retried here; fallback decisions
// belong to the caller.
func (c *GeminiClient) Analyze(ctx context.Context, resumeText string) (*types.ResumeAnalysis, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(analysisPrompt(resumeText)))
	if err != nil {
		return nil, &TransportError{Op: "analyze", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, newMalformedResponseError("", err)
	}

	return ParseAnalysis(text)
}

// ExtractTextFromImage forwards an image payload and the fixed OCR
// instruction, returning the response text verbatim. An absent text part
// yields an empty string, not an error.
func (c *GeminiClient) ExtractTextFromImage(ctx context.Context, base64Data, mimeType string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("invalid base64 image data: %w", err)
	}

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(imageInstruction),
	)
	if err != nil {
		return "", &TransportError{Op: "extract image text", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", nil
	}
	return text, nil
}

// Ping verifies endpoint connectivity with a trivial generation request.
func (c *GeminiClient) Ping(ctx context.Context) error {
	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(pingPrompt()))
	if err != nil {
		return &TransportError{Op: "ping", Cause: err}
	}
	text, err := extractTextFromResponse(resp)
	if err != nil {
		return newMalformedResponseError("", err)
	}
	if !strings.Contains(text, pingMarker) {
		return newMalformedResponseError(text, fmt.Errorf("unexpected ping response"))
	}
	return nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
