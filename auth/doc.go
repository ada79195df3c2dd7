// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing, random IDs, and the in-memory
admin session store.

# Password Hashing

Admin passwords are hashed with HMAC-SHA256 under a server-wide salt
(ADMIN_KEY_SALT). Verification is constant time:

	hash := auth.HashPassword(password, cfg.AdminKeySalt)
	err := auth.VerifyPassword(password, hash, cfg.AdminKeySalt)

# Admin Sessions

Successful logins are issued an opaque UUID token, stored server-side with
a 12 hour TTL and carried by the client in the admin_session cookie:

	token := sessions.Issue(username)
	username, err := sessions.Lookup(token)
	sessions.Revoke(token)

# Random IDs

GenerateID produces random hex identifiers used for vote, election and
audit-log rows.
*/
package auth
