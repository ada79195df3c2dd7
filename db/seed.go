// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"
)

// The national-party ballot, in fixed spoken order. Candidate numbers
// are what voters say aloud, so the ordering never changes between runs.
var seedCandidates = []struct {
	id   int
	name string
}{
	{1, "BJP"},
	{2, "CONGRESS"},
	{3, "JDS"},
	{4, "AAP"},
	{5, "BSP"},
	{6, "CPI"},
	{7, "TMC"},
	{8, "JD(U)"},
	{9, "SP"},
}

const (
	seedVoterCount = 200
	seedRandSource = 42
)

// Seed populates the ballot, a synthetic voter roll, and the default
// admin account. Safe to call on every startup: candidates are upserted,
// voters are only generated when the roll is below the target count, and
// the admin row is left alone if it already exists.
func Seed(db *sql.DB, adminUser, adminPasswordHash string) error {
	for _, c := range seedCandidates {
		_, err := db.Exec(`
			INSERT INTO candidate (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
			c.id, c.name)
		if err != nil {
			return fmt.Errorf("failed to seed candidate %d: %w", c.id, err)
		}
	}

	if err := seedVoters(db); err != nil {
		return err
	}

	return seedAdmin(db, adminUser, adminPasswordHash)
}

// seedVoters fills the roll with deterministic synthetic voters of the
// form "<state>-<number>". A fixed random source keeps the roll stable
// across restarts so demo IDs stay valid.
func seedVoters(db *sql.DB) error {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM voter WHERE id LIKE '%-%'`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count voters: %w", err)
	}
	if count >= seedVoterCount {
		return nil
	}

	rng := rand.New(rand.NewSource(seedRandSource))
	now := time.Now().UTC()
	seen := make(map[string]bool)
	for len(seen) < seedVoterCount {
		state := rng.Intn(9) + 1
		num := rng.Intn(999) + 1
		id := fmt.Sprintf("%d-%d", state, num)
		if seen[id] {
			continue
		}
		seen[id] = true

		_, err := db.Exec(`
			INSERT INTO voter (id, name, constituency, language, accessibility_flag, enabled, created_at)
			VALUES ($1, $2, $3, $4, $5, 1, $6)
			ON CONFLICT (id) DO NOTHING`,
			id,
			fmt.Sprintf("Voter %s", id),
			fmt.Sprintf("Constituency %d", state),
			"en",
			"NORMAL",
			now)
		if err != nil {
			return fmt.Errorf("failed to seed voter %s: %w", id, err)
		}
	}

	return nil
}

func seedAdmin(db *sql.DB, username, passwordHash string) error {
	if username == "" || passwordHash == "" {
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO admin (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING`,
		username, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	return nil
}
