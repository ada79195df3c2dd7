// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/cliparse"
	"github.com/09samarth/ai-voting-system/db"
	"github.com/09samarth/ai-voting-system/middleware"
	"github.com/09samarth/ai-voting-system/models"
)

// defaultLogLimit bounds the audit log endpoints when no limit is given.
const defaultLogLimit = 100

type AdminHandler struct {
	store    *db.Store
	sessions *auth.SessionStore
	cfg      cliparse.Config
}

func NewAdminHandler(store *db.Store, sessions *auth.SessionStore, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: store, sessions: sessions, cfg: cfg}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	admin, err := h.store.GetAdmin(r.Context(), req.Username)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to look up admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.VerifyPassword(req.Password, admin.PasswordHash, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token := h.sessions.Issue(admin.Username)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.SessionTTL.Seconds()),
	})

	h.audit(r, admin.Username, "login", "")
	slog.Info("admin logged in", "username", admin.Username)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Username: admin.Username})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.AdminSessionCookie); err == nil {
		h.sessions.Revoke(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"logged_out": true})
}

// ListVoters handles GET /api/admin/voters
func (h *AdminHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters, err := h.store.ListVoters(r.Context())
	if err != nil {
		slog.Error("failed to list voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if voters == nil {
		voters = []models.Voter{}
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// CreateVoter handles POST /api/admin/voters
func (h *AdminHandler) CreateVoter(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.VoterID == "" || req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id and name are required")
		return
	}

	if _, err := h.store.GetVoter(r.Context(), req.VoterID); err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Voter ID already registered")
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		slog.Error("failed to check voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voter, err := h.store.CreateVoter(r.Context(), req)
	if err != nil {
		slog.Error("failed to create voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create voter")
		return
	}

	h.audit(r, middleware.AdminUsername(r), "create_voter", voter.ID)
	middleware.JSONResponse(w, http.StatusCreated, voter)
}

// SetVoterEnabled handles PUT /api/admin/voters/{id}/enabled
func (h *AdminHandler) SetVoterEnabled(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")

	var req models.SetVoterEnabledRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.store.SetVoterEnabled(r.Context(), voterID, req.Enabled)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to update voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update voter")
		return
	}

	action := "disable_voter"
	if req.Enabled {
		action = "enable_voter"
	}
	h.audit(r, middleware.AdminUsername(r), action, voterID)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"updated": true})
}

// ListElections handles GET /api/admin/elections
func (h *AdminHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.store.ListElections(r.Context())
	if err != nil {
		slog.Error("failed to list elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if elections == nil {
		elections = []models.Election{}
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// CreateElection handles POST /api/admin/elections
func (h *AdminHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	election, err := h.store.CreateElection(r.Context(), req.Name)
	if err != nil {
		slog.Error("failed to create election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	h.audit(r, middleware.AdminUsername(r), "create_election", election.Name)
	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{ElectionID: election.ID})
}

// SetElectionActive handles PUT /api/admin/elections/{id}/active
func (h *AdminHandler) SetElectionActive(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")

	var req models.SetElectionActiveRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.store.SetElectionActive(r.Context(), electionID, req.Active)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to update election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election")
		return
	}

	action := "deactivate_election"
	if req.Active {
		action = "activate_election"
	}
	h.audit(r, middleware.AdminUsername(r), action, electionID)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"updated": true})
}

// AssignCandidate handles POST /api/admin/elections/{id}/candidates
func (h *AdminHandler) AssignCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")

	var req models.AssignCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	err := h.store.AssignCandidate(r.Context(), electionID, req.CandidateID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to assign candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to assign candidate")
		return
	}

	h.audit(r, middleware.AdminUsername(r), "assign_candidate",
		fmt.Sprintf("%s:%d", electionID, req.CandidateID))

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"assigned": true})
}

// RemoveCandidate handles DELETE /api/admin/elections/{id}/candidates/{candidateID}
func (h *AdminHandler) RemoveCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	candidateID, err := strconv.Atoi(r.PathValue("candidateID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	err = h.store.RemoveCandidate(r.Context(), electionID, candidateID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Assignment not found")
		return
	}
	if err != nil {
		slog.Error("failed to remove candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove candidate")
		return
	}

	h.audit(r, middleware.AdminUsername(r), "remove_candidate",
		fmt.Sprintf("%s:%d", electionID, candidateID))

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"removed": true})
}

// VoteLog handles GET /api/admin/logs/votes
func (h *AdminHandler) VoteLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.VoteLog(r.Context(), logLimit(r))
	if err != nil {
		slog.Error("failed to read vote log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if entries == nil {
		entries = []models.VoteLogEntry{}
	}
	for i := range entries {
		entries[i].When = humanize.Time(entries[i].CastAt)
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// AdminLog handles GET /api/admin/logs/actions
func (h *AdminHandler) AdminLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.AdminLog(r.Context(), logLimit(r))
	if err != nil {
		slog.Error("failed to read admin log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if entries == nil {
		entries = []models.AdminLogEntry{}
	}
	for i := range entries {
		entries[i].When = humanize.Time(entries[i].LoggedAt)
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// audit records an admin action; failures are logged but never block the
// response.
func (h *AdminHandler) audit(r *http.Request, username, action, detail string) {
	if username == "" {
		return
	}
	if err := h.store.RecordAdminAction(r.Context(), username, action, detail); err != nil {
		slog.Warn("failed to record admin action", "action", action, "error", err)
	}
}

func logLimit(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return defaultLogLimit
}
