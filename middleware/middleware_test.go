package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	JSONResponse(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorResponse(w, http.StatusNotFound, "Session not found")

	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error != "Not Found" || body.Message != "Session not found" {
		t.Errorf("unexpected error body: %+v", body)
	}
}

func TestParseJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"admin"}`))

	var body models.LoginRequest
	if err := ParseJSONBody(req, &body); err != nil {
		t.Fatalf("ParseJSONBody failed: %v", err)
	}
	if body.Username != "admin" {
		t.Errorf("unexpected parse result: %+v", body)
	}

	bad := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	if err := ParseJSONBody(bad, &body); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestRequireAdmin(t *testing.T) {
	sessions := auth.NewSessionStore()
	token := sessions.Issue("admin")

	var sawUsername string
	handler := RequireAdmin(sessions, func(w http.ResponseWriter, r *http.Request) {
		sawUsername = AdminUsername(r)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		cookie         *http.Cookie
		expectedStatus int
	}{
		{
			name:           "no cookie",
			cookie:         nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bogus token",
			cookie:         &http.Cookie{Name: AdminSessionCookie, Value: "bogus"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid session",
			cookie:         &http.Cookie{Name: AdminSessionCookie, Value: token},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sawUsername = ""
			req := httptest.NewRequest("GET", "/admin/voters", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus == http.StatusOK && sawUsername != "admin" {
				t.Errorf("handler should see the admin username, got %q", sawUsername)
			}
			if tt.expectedStatus == http.StatusUnauthorized && sawUsername != "" {
				t.Error("handler must not run for unauthenticated requests")
			}
		})
	}
}

func TestAdminUsernameWithoutGuard(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := AdminUsername(req); got != "" {
		t.Errorf("expected empty username, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/api/candidates", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("unexpected allow-origin %q", got)
	}
}
