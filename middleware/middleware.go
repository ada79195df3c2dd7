// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/models"
)

// AdminSessionCookie carries the admin session token.
const AdminSessionCookie = "admin_session"

type contextKey string

const adminUsernameKey contextKey = "admin_username"

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		next(w, r)

		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// RequireAdmin guards a handler behind an authenticated admin session: the
// admin_session cookie must resolve to a live session, otherwise the request
// is rejected with 401 before the handler runs. The admin username is made
// available via AdminUsername.
func RequireAdmin(sessions *auth.SessionStore, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AdminSessionCookie)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Admin login required")
			return
		}

		username, err := sessions.Lookup(cookie.Value)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Admin login required")
			return
		}

		ctx := context.WithValue(r.Context(), adminUsernameKey, username)
		next(w, r.WithContext(ctx))
	}
}

// AdminUsername returns the authenticated admin for a request that passed
// RequireAdmin, or an empty string otherwise.
func AdminUsername(r *http.Request) string {
	username, _ := r.Context().Value(adminUsernameKey).(string)
	return username
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// CORS middleware allows cross-origin requests from the voting frontend
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
