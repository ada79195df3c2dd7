// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/db"
	"github.com/09samarth/ai-voting-system/middleware"
	"github.com/09samarth/ai-voting-system/models"
	"github.com/09samarth/ai-voting-system/testutil"
)

// setupAdmin prepares a database with an admin account plus a logged-in
// session cookie for exercising guarded handlers.
func setupAdmin(t *testing.T) (*sql.DB, *AdminHandler, *auth.SessionStore, *http.Cookie) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	testutil.CreateTestAdmin(t, conn, cfg)

	sessions := auth.NewSessionStore()
	handler := NewAdminHandler(db.New(conn), sessions, cfg)

	token := sessions.Issue(cfg.AdminUser)
	cookie := &http.Cookie{Name: middleware.AdminSessionCookie, Value: token}

	return conn, handler, sessions, cookie
}

func TestAdminLogin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	testutil.CreateTestAdmin(t, conn, cfg)

	sessions := auth.NewSessionStore()
	handler := NewAdminHandler(db.New(conn), sessions, cfg)

	tests := []struct {
		name           string
		body           models.LoginRequest
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			body:           models.LoginRequest{Username: cfg.AdminUser, Password: cfg.AdminPass},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           models.LoginRequest{Username: cfg.AdminUser, Password: "nope"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown user",
			body:           models.LoginRequest{Username: "ghost", Password: cfg.AdminPass},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			body:           models.LoginRequest{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/admin/login", tc.body, nil)
			w := httptest.NewRecorder()
			handler.Login(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus == http.StatusOK {
				cookies := w.Result().Cookies()
				if len(cookies) == 0 || cookies[0].Name != middleware.AdminSessionCookie {
					t.Fatal("Expected an admin session cookie")
				}
				if _, err := sessions.Lookup(cookies[0].Value); err != nil {
					t.Errorf("Issued session did not resolve: %v", err)
				}
			}
		})
	}
}

func TestAdminLogout(t *testing.T) {
	_, handler, sessions, cookie := setupAdmin(t)

	req := testutil.MakeRequest("POST", "/api/admin/logout", nil, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if _, err := sessions.Lookup(cookie.Value); err == nil {
		t.Error("Expected session to be revoked after logout")
	}
}

func TestRequireAdminGuard(t *testing.T) {
	_, handler, sessions, cookie := setupAdmin(t)
	guarded := middleware.RequireAdmin(sessions, handler.ListVoters)

	// No cookie: rejected before the handler runs
	w := httptest.NewRecorder()
	guarded(w, testutil.MakeRequest("GET", "/api/admin/voters", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Stale cookie: rejected
	w = httptest.NewRecorder()
	req := testutil.MakeRequest("GET", "/api/admin/voters", nil, nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminSessionCookie, Value: "stale"})
	guarded(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Live session: passes through
	w = httptest.NewRecorder()
	req = testutil.MakeRequest("GET", "/api/admin/voters", nil, nil)
	req.AddCookie(cookie)
	guarded(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestCreateVoterHandler(t *testing.T) {
	_, handler, sessions, cookie := setupAdmin(t)
	guarded := middleware.RequireAdmin(sessions, handler.CreateVoter)

	body := models.CreateVoterRequest{VoterID: "4-250", Name: "New Voter"}
	req := testutil.MakeRequest("POST", "/api/admin/voters", body, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	guarded(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var voter models.Voter
	testutil.AssertJSON(t, w, &voter)
	if voter.ID != "4-250" || !voter.Enabled {
		t.Errorf("Unexpected voter: %+v", voter)
	}

	// Duplicate voter IDs are rejected
	req = testutil.MakeRequest("POST", "/api/admin/voters", body, nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	guarded(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestSetVoterEnabledHandler(t *testing.T) {
	conn, handler, sessions, cookie := setupAdmin(t)
	testutil.CreateTestVoter(t, conn, "7-12")
	guarded := middleware.RequireAdmin(sessions, handler.SetVoterEnabled)

	req := testutil.MakeRequest("PUT", "/api/admin/voters/7-12/enabled",
		models.SetVoterEnabledRequest{Enabled: false}, nil)
	req.SetPathValue("id", "7-12")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	guarded(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	voter, err := db.New(conn).GetVoter(req.Context(), "7-12")
	if err != nil {
		t.Fatalf("GetVoter failed: %v", err)
	}
	if voter.Enabled {
		t.Error("Expected voter to be disabled")
	}

	// Unknown voter is a 404
	req = testutil.MakeRequest("PUT", "/api/admin/voters/9-999/enabled",
		models.SetVoterEnabledRequest{Enabled: true}, nil)
	req.SetPathValue("id", "9-999")
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	guarded(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestElectionHandlers(t *testing.T) {
	conn, handler, sessions, cookie := setupAdmin(t)
	testutil.SeedTestCandidates(t, conn, "BJP", "CONGRESS", "JDS")

	withCookie := func(req *http.Request) *http.Request {
		req.AddCookie(cookie)
		return req
	}

	// Create
	w := httptest.NewRecorder()
	middleware.RequireAdmin(sessions, handler.CreateElection)(w,
		withCookie(testutil.MakeRequest("POST", "/api/admin/elections",
			models.CreateElectionRequest{Name: "General Election 2026"}, nil)))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreateElectionResponse
	testutil.AssertJSON(t, w, &created)
	if created.ElectionID == "" {
		t.Fatal("Expected an election ID")
	}

	// Assign a candidate
	w = httptest.NewRecorder()
	req := withCookie(testutil.MakeRequest("POST",
		"/api/admin/elections/"+created.ElectionID+"/candidates",
		models.AssignCandidateRequest{CandidateID: 2}, nil))
	req.SetPathValue("id", created.ElectionID)
	middleware.RequireAdmin(sessions, handler.AssignCandidate)(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Activate
	w = httptest.NewRecorder()
	req = withCookie(testutil.MakeRequest("PUT",
		"/api/admin/elections/"+created.ElectionID+"/active",
		models.SetElectionActiveRequest{Active: true}, nil))
	req.SetPathValue("id", created.ElectionID)
	middleware.RequireAdmin(sessions, handler.SetElectionActive)(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// List reflects all of it
	w = httptest.NewRecorder()
	middleware.RequireAdmin(sessions, handler.ListElections)(w,
		withCookie(testutil.MakeRequest("GET", "/api/admin/elections", nil, nil)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var elections []models.Election
	testutil.AssertJSON(t, w, &elections)
	if len(elections) != 1 {
		t.Fatalf("Expected 1 election, got %d", len(elections))
	}
	if !elections[0].Active || len(elections[0].CandidateIDs) != 1 || elections[0].CandidateIDs[0] != 2 {
		t.Errorf("Unexpected election state: %+v", elections[0])
	}

	// Remove the candidate again
	w = httptest.NewRecorder()
	req = withCookie(testutil.MakeRequest("DELETE",
		"/api/admin/elections/"+created.ElectionID+"/candidates/2", nil, nil))
	req.SetPathValue("id", created.ElectionID)
	req.SetPathValue("candidateID", "2")
	middleware.RequireAdmin(sessions, handler.RemoveCandidate)(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestAuditLogs(t *testing.T) {
	conn, handler, sessions, cookie := setupAdmin(t)
	testutil.SeedTestCandidates(t, conn, "BJP")
	store := db.New(conn)

	// Generate some activity
	guardedCreate := middleware.RequireAdmin(sessions, handler.CreateVoter)
	req := testutil.MakeRequest("POST", "/api/admin/voters",
		models.CreateVoterRequest{VoterID: "3-17", Name: "Logged Voter"}, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	guardedCreate(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	if err := store.RecordVote(req.Context(), "3-17", 1); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}

	// Admin action log
	w = httptest.NewRecorder()
	req = testutil.MakeRequest("GET", "/api/admin/logs/actions", nil, nil)
	req.AddCookie(cookie)
	middleware.RequireAdmin(sessions, handler.AdminLog)(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var actions []models.AdminLogEntry
	testutil.AssertJSON(t, w, &actions)
	if len(actions) != 1 {
		t.Fatalf("Expected 1 admin log entry, got %d", len(actions))
	}
	if actions[0].Action != "create_voter" || actions[0].Detail != "3-17" {
		t.Errorf("Unexpected log entry: %+v", actions[0])
	}
	if actions[0].When == "" {
		t.Error("Expected a humanized timestamp")
	}

	// Vote log
	w = httptest.NewRecorder()
	req = testutil.MakeRequest("GET", "/api/admin/logs/votes", nil, nil)
	req.AddCookie(cookie)
	middleware.RequireAdmin(sessions, handler.VoteLog)(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var votes []models.VoteLogEntry
	testutil.AssertJSON(t, w, &votes)
	if len(votes) != 1 {
		t.Fatalf("Expected 1 vote log entry, got %d", len(votes))
	}
	if votes[0].VoterToken != "3-17" || votes[0].CandidateName != "BJP" {
		t.Errorf("Unexpected vote log entry: %+v", votes[0])
	}
	if votes[0].When == "" {
		t.Error("Expected a humanized timestamp")
	}
}
