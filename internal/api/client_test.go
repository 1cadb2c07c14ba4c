package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanush/resumai/internal/types"
)

func TestClient_Register(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.AuthResponse{
			Token: "jwt-token",
			User:  &types.User{ID: "u1", Email: "a@example.com", Name: "a"},
		})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Register(context.Background(), "a@example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestClient_BearerTokenForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string][]types.HistoryItem{"items": {}})
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).ListAnalyses(context.Background(), "my-token")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_ErrorStatusCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Register(context.Background(), "a@example.com", "secret1", "")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "email already registered", apiErr.Message)
}

func TestClient_TransportFailure(t *testing.T) {
	// Grab a port that is guaranteed closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Login(context.Background(), "a@example.com", "secret1")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Error(t, apiErr.Unwrap())
}
