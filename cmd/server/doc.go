// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voting API server.

The server exposes a voice-driven voting system: each voting session runs
as a separate voice worker process, and the browser polls the server for
that session's progress until a terminal result arrives.

# Starting the Server

The server reads environment variables (optionally from a .env file) or
CLI flags:

	ADMIN_KEY_SALT=... ADMIN_PASSWORD=... go run ./cmd/server

Or with flags:

	go run ./cmd/server -p 5000 -t sqlite -d votes.db -worker "./voiceworker"

# Configuration

Required settings:

  - ADMIN_KEY_SALT (-admin-salt): Secret for admin password hashing
  - ADMIN_PASSWORD (-admin-pass): Default admin password
  - WORKER_COMMAND (-worker): Voice worker invocation

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or sqlite file (default: votes.db)
  - MAILBOX_DIR (-mailbox-dir): Session status directory (default: run)
  - LOG_DIR (-log-dir): Worker log directory (default: logs)
  - EVICT_AFTER_MINUTES (-evict-after): Stale session retention

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (voting sessions, admin tier)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, admin session guard, JSON helpers
  - models: Request/response types
  - auth: Password hashing and admin sessions
  - db: Schema creation, seeding, and queries
  - supervisor: Voice worker lifecycle and status polling
  - cliparse: Configuration parsing

The voice pipeline itself (speech, grammar, capture, flow, status) lives
in the voiceworker binary; see those packages for the session internals.
*/
package main
