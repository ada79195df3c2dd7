// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP endpoints for the voting API.

# Handler Organization

Handlers are grouped by resource:

  - VotingHandler: Session lifecycle and public ballot data
  - AdminHandler: Admin auth, voter roll, elections, audit logs

# Voting Sessions

Voice voting runs out-of-process: StartSession asks the supervisor
registry to launch a worker and returns its session ID; GetStatus is a
non-blocking poll of that session's mailbox; ResetSession kills the
worker and discards the session. Handlers never wait on a worker.

# Admin Tier

Admin endpoints sit behind middleware.RequireAdmin, which resolves the
admin_session cookie to a logged-in username. Every mutation is written
to the admin audit trail under that username.

# Response Conventions

All responses are JSON. Errors use middleware.ErrorResponse with
appropriate status codes:

  - 400: Invalid input
  - 401: Missing or expired admin session
  - 404: Resource not found
  - 409: Conflict (duplicate voter ID)
  - 500: Database or worker errors
*/
package handlers
