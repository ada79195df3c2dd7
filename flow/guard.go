// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package flow

import (
	"log/slog"
	"sync"

	"github.com/09samarth/ai-voting-system/status"
)

// terminalGuard wraps a status.Reporter and enforces the session contract:
// at most one terminal record is ever published, and at least one exists by
// the time the flow returns.
type terminalGuard struct {
	inner status.Reporter

	mu    sync.Mutex
	wrote bool
}

func (g *terminalGuard) Progress(step int, state, message string) error {
	return g.inner.Progress(step, state, message)
}

func (g *terminalGuard) Final(success bool, message, voterID, candidate string) error {
	g.mu.Lock()
	if g.wrote {
		g.mu.Unlock()
		return nil
	}
	g.wrote = true
	g.mu.Unlock()

	return g.inner.Final(success, message, voterID, candidate)
}

// ensure publishes a fallback terminal failure if nothing terminal was
// written. Reached only when a fault escaped every other reporting path.
func (g *terminalGuard) ensure(log *slog.Logger) {
	g.mu.Lock()
	wrote := g.wrote
	g.mu.Unlock()
	if wrote {
		return
	}

	log.Error("voting flow ended without a terminal status, publishing fallback")
	if err := g.Final(false, "Voice voting ended unexpectedly. Please start a new session.", "", ""); err != nil {
		log.Error("failed to publish fallback terminal status", "error", err)
	}
}
