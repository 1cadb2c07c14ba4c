// Package api provides the HTTP client for the ResumAI backend REST API.
// The persistence gateway uses it for the remote half of its dual-mode
// behavior.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thanush/resumai/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Error represents a failed remote API call, either transport-level or a
// non-success HTTP status.
type Error struct {
	Op         string
	StatusCode int // 0 for transport failures
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("api error during %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("api error during %s: %s (status %d)", e.Op, e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client is an HTTP client for the backend REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:4000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// registerRequest mirrors the backend's register body.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Register creates an account and returns the token and user record.
func (c *Client) Register(ctx context.Context, email, password, name string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, "register", http.MethodPost, "/api/auth/register", "",
		registerRequest{Email: email, Password: password, Name: name}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and returns the token and user record.
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "",
		types.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the account belonging to the token.
func (c *Client) Profile(ctx context.Context, token string) (*types.User, error) {
	var resp struct {
		User *types.User `json:"user"`
	}
	err := c.do(ctx, "profile", http.MethodGet, "/api/auth/profile", token, nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SaveAnalysis persists one analysis document for the token's user.
func (c *Client) SaveAnalysis(ctx context.Context, token, resumeText string, analysis types.ResumeAnalysis) error {
	return c.do(ctx, "save analysis", http.MethodPost, "/api/analyses", token,
		types.SaveAnalysisRequest{ResumeText: resumeText, Analysis: analysis}, nil)
}

// ListAnalyses fetches the token user's history, newest first.
func (c *Client) ListAnalyses(ctx context.Context, token string) ([]types.HistoryItem, error) {
	var resp struct {
		Items []types.HistoryItem `json:"items"`
	}
	err := c.do(ctx, "list analyses", http.MethodGet, "/api/analyses", token, nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, "/api/health", "", nil, nil)
}

// do performs one JSON request/response round trip. Any transport failure or
// non-2xx status comes back as *Error.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Message: "failed to encode request", Cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Op: op, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("HTTP status %d", resp.StatusCode)
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return &Error{Op: op, StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Op: op, Message: "failed to decode response", Cause: err}
		}
	}
	return nil
}
