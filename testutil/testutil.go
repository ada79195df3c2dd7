// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/cliparse"
	"github.com/09samarth/ai-voting-system/db"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// Each test gets its own file under t.TempDir so tests stay isolated
// and cleanup is automatic.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "votes_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          5000,
		DatabaseType:  "sqlite",
		AdminKeySalt:  "test-admin-salt",
		AdminUser:     "admin",
		AdminPass:     "test-password",
		WorkerCommand: []string{"sh", "-c", "true"},
	}
}

// SeedTestCandidates inserts a small ordered ballot
func SeedTestCandidates(t *testing.T, conn *sql.DB, names ...string) {
	t.Helper()

	for i, name := range names {
		_, err := conn.Exec(`INSERT INTO candidate (id, name) VALUES ($1, $2)`, i+1, name)
		if err != nil {
			t.Fatalf("Failed to seed candidate %q: %v", name, err)
		}
	}
}

// CreateTestVoter registers a voter with the given state-coded ID
func CreateTestVoter(t *testing.T, conn *sql.DB, id string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voter (id, name, accessibility_flag, enabled, created_at)
		VALUES ($1, $2, 'NORMAL', 1, $3)`,
		id, "Voter "+id, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
}

// CreateTestAdmin inserts an admin account with the config's credentials
func CreateTestAdmin(t *testing.T, conn *sql.DB, cfg cliparse.Config) {
	t.Helper()

	hash := auth.HashPassword(cfg.AdminPass, cfg.AdminKeySalt)
	_, err := conn.Exec(`
		INSERT INTO admin (username, password_hash, created_at)
		VALUES ($1, $2, $3)`,
		cfg.AdminUser, hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
