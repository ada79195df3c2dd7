// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation, seeding, and queries.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - voter: Registered voters with state-coded IDs
  - candidate: The fixed, ordered ballot
  - vote: Append-only vote records
  - admin: Admin accounts
  - admin_log: Admin action audit trail
  - election: Election metadata
  - election_candidate: Links candidates to elections

# Seeding

Seed populates the nine-party ballot, a 200-voter synthetic roll, and the
default admin account. Seeding is idempotent and deterministic: the voter
roll is generated from a fixed random source so demo voter IDs survive
restarts.

# Store

Store wraps *sql.DB with the queries the handlers and the voice worker
use. Every statement uses ordinal placeholders and portable SQL so the
same Store runs under both the sqlite and postgres drivers.
*/
package db
