// Package server provides the HTTP REST API for the ResumAI backend.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/thanush/resumai/internal/server/middleware"
	"github.com/thanush/resumai/internal/storage"
	"github.com/thanush/resumai/internal/types"
)

// AnalysisHandler handles analysis persistence requests.
type AnalysisHandler struct {
	store storage.Store
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(store storage.Store) *AnalysisHandler {
	return &AnalysisHandler{store: store}
}

// saveAnalysisResponse acknowledges a stored analysis.
type saveAnalysisResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Save stores one analysis document for the authenticated user. Score fields
// are clamped to [0,100] before the record is accepted.
func (h *AnalysisHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.SaveAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Analysis.Clamp()

	item, err := h.store.SaveAnalysis(r.Context(), userID, req.ResumeText, req.Analysis)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	jsonResponse(w, http.StatusOK, saveAnalysisResponse{ID: item.ID, CreatedAt: item.Timestamp})
}

// List returns the authenticated user's analyses, newest first, capped at 50.
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.list(w, r, userID)
}

// ListForUser serves the legacy /api/analysis/{userId} route. The path user
// must match the token user.
func (h *AnalysisHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	authUserID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pathUserID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil || pathUserID != authUserID {
		errorResponse(w, http.StatusForbidden, "Forbidden")
		return
	}

	h.list(w, r, authUserID)
}

func (h *AnalysisHandler) list(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	items, err := h.store.ListAnalyses(r.Context(), userID, storage.DefaultHistoryLimit)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []types.HistoryItem{}
	}

	jsonResponse(w, http.StatusOK, map[string][]types.HistoryItem{"items": items})
}
