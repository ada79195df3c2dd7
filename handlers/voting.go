// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/09samarth/ai-voting-system/cliparse"
	"github.com/09samarth/ai-voting-system/db"
	"github.com/09samarth/ai-voting-system/middleware"
	"github.com/09samarth/ai-voting-system/models"
	"github.com/09samarth/ai-voting-system/supervisor"
)

type VotingHandler struct {
	store    *db.Store
	registry *supervisor.Registry
	cfg      cliparse.Config
}

func NewVotingHandler(store *db.Store, registry *supervisor.Registry, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: store, registry: registry, cfg: cfg}
}

// StartSession handles POST /api/voice-voting
func (h *VotingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.registry.Start()
	if err != nil {
		slog.Error("failed to start voting session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start voice voting")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StartVotingResponse{
		SessionID: sessionID,
		Message:   "Voice voting session started",
	})
}

// GetStatus handles GET /api/voice-voting/{id}/status
func (h *VotingHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	resp, err := h.registry.Poll(sessionID)
	if errors.Is(err, supervisor.ErrSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to poll voting session", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read session status")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ResetSession handles POST /api/voice-voting/{id}/reset
func (h *VotingHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	err := h.registry.Reset(sessionID)
	if errors.Is(err, supervisor.ErrSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to reset voting session", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResetSessionResponse{Reset: true})
}

// Candidates handles GET /api/candidates
func (h *VotingHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.store.ListCandidates(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Results handles GET /api/results
func (h *VotingHandler) Results(w http.ResponseWriter, r *http.Request) {
	totals, err := h.store.VoteTotals(r.Context())
	if err != nil {
		slog.Error("failed to compute vote totals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if totals == nil {
		totals = []models.VoteTotal{}
	}

	middleware.JSONResponse(w, http.StatusOK, totals)
}
