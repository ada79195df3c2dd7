// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to their handlers.

Uses Go 1.22+ pattern routing with method-specific handlers and path
parameters:

	mux.HandleFunc("GET /api/voice-voting/{id}/status", ...)

All routes pass through middleware.WithLogging; admin routes are
additionally wrapped in middleware.RequireAdmin so the session check
runs before the handler.
*/
package router
