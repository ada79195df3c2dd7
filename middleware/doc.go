// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: structured request/completion logging via slog
  - RequireAdmin: guards admin routes behind the admin_session cookie;
    unauthenticated requests get 401 before the handler runs
  - CORS: cross-origin headers for the browser frontend

RequireAdmin is composed per route, so every protected operation declares
its guard where the route is registered:

	mux.HandleFunc("GET /admin/voters",
		middleware.WithLogging(middleware.RequireAdmin(sessions, h.ListVoters)))

Handlers behind the guard can recover the acting admin with AdminUsername,
which the audit log uses.

# Helpers

JSONResponse, ErrorResponse and ParseJSONBody keep handler bodies focused
on domain logic rather than encoding mechanics.
*/
package middleware
