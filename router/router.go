// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/cliparse"
	"github.com/09samarth/ai-voting-system/db"
	"github.com/09samarth/ai-voting-system/handlers"
	"github.com/09samarth/ai-voting-system/middleware"
	"github.com/09samarth/ai-voting-system/supervisor"
)

func NewRouter(store *db.Store, registry *supervisor.Registry, sessions *auth.SessionStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(store, registry, cfg)
	adminHandler := handlers.NewAdminHandler(store, sessions, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voice voting sessions (public)
	mux.HandleFunc("POST /api/voice-voting", middleware.WithLogging(votingHandler.StartSession))
	mux.HandleFunc("GET /api/voice-voting/{id}/status", middleware.WithLogging(votingHandler.GetStatus))
	mux.HandleFunc("POST /api/voice-voting/{id}/reset", middleware.WithLogging(votingHandler.ResetSession))

	// Ballot data (public)
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(votingHandler.Candidates))
	mux.HandleFunc("GET /api/results", middleware.WithLogging(votingHandler.Results))

	// Admin auth
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("POST /api/admin/logout", middleware.WithLogging(adminHandler.Logout))

	// Admin: voter roll
	mux.HandleFunc("GET /api/admin/voters",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.ListVoters)))
	mux.HandleFunc("POST /api/admin/voters",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.CreateVoter)))
	mux.HandleFunc("PUT /api/admin/voters/{id}/enabled",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.SetVoterEnabled)))

	// Admin: elections
	mux.HandleFunc("GET /api/admin/elections",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.ListElections)))
	mux.HandleFunc("POST /api/admin/elections",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.CreateElection)))
	mux.HandleFunc("PUT /api/admin/elections/{id}/active",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.SetElectionActive)))
	mux.HandleFunc("POST /api/admin/elections/{id}/candidates",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.AssignCandidate)))
	mux.HandleFunc("DELETE /api/admin/elections/{id}/candidates/{candidateID}",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.RemoveCandidate)))

	// Admin: audit logs
	mux.HandleFunc("GET /api/admin/logs/votes",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.VoteLog)))
	mux.HandleFunc("GET /api/admin/logs/actions",
		middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.AdminLog)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ai-voting-system API v1"))
	})

	return mux
}
