// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("admin session expired or unknown")
)

// SessionTTL is how long an admin session stays valid after login.
const SessionTTL = 12 * time.Hour

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword derives a salted, deterministic hash for an admin password.
// The salt is a server-wide secret, not stored next to the hash.
func HashPassword(password, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPassword checks a password against its stored hash in constant time.
func VerifyPassword(password, hash, salt string) error {
	expected := HashPassword(password, salt)
	if !hmac.Equal([]byte(hash), []byte(expected)) {
		return ErrInvalidCredentials
	}
	return nil
}

type adminSession struct {
	username  string
	expiresAt time.Time
}

// SessionStore holds live admin sessions in memory. Sessions do not survive
// a server restart, which forces a fresh login.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]adminSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]adminSession)}
}

// Issue creates a session token for an authenticated admin.
func (s *SessionStore) Issue(username string) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = adminSession{
		username:  username,
		expiresAt: time.Now().Add(SessionTTL),
	}
	return token
}

// Lookup resolves a session token to its admin username. Expired sessions
// are dropped on access.
func (s *SessionStore) Lookup(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return "", ErrSessionExpired
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return "", ErrSessionExpired
	}
	return sess.username, nil
}

// Revoke ends a session. Revoking an unknown token is a no-op.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
