// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/models"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps a *sql.DB with the queries the voting system needs.
// All queries use ordinal placeholders so the same statements run
// under both the sqlite and postgres drivers.
type Store struct {
	db *sql.DB
}

// New returns a Store backed by the given database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListCandidates returns the full ballot, ordered by candidate number.
func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM candidate ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

// RecordVote appends a vote for the given candidate. Votes are
// append-only; nothing prevents the same voter token appearing twice.
func (s *Store) RecordVote(ctx context.Context, voterToken string, candidateID int) error {
	id, err := auth.GenerateID(16)
	if err != nil {
		return fmt.Errorf("failed to generate vote ID: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO vote (id, voter_token, candidate_id, cast_at) VALUES ($1, $2, $3, $4)`,
		id, voterToken, candidateID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	return nil
}

// VoteTotals returns per-candidate tallies, including zero-vote candidates.
func (s *Store) VoteTotals(ctx context.Context) ([]models.VoteTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, COUNT(v.id)
		FROM candidate c
		LEFT JOIN vote v ON v.candidate_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote totals: %w", err)
	}
	defer rows.Close()

	var totals []models.VoteTotal
	for rows.Next() {
		var t models.VoteTotal
		if err := rows.Scan(&t.CandidateID, &t.CandidateName, &t.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan vote total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// VoteLog returns the most recent votes, newest first.
func (s *Store) VoteLog(ctx context.Context, limit int) ([]models.VoteLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.voter_token, v.candidate_id, c.name, v.cast_at
		FROM vote v
		LEFT JOIN candidate c ON c.id = v.candidate_id
		ORDER BY v.cast_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote log: %w", err)
	}
	defer rows.Close()

	var entries []models.VoteLogEntry
	for rows.Next() {
		var e models.VoteLogEntry
		var name sql.NullString
		if err := rows.Scan(&e.ID, &e.VoterToken, &e.CandidateID, &name, &e.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote log entry: %w", err)
		}
		e.CandidateName = name.String
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetAdmin looks up an admin account by username.
func (s *Store) GetAdmin(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password_hash, created_at FROM admin WHERE username = $1`,
		username).Scan(&a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to query admin: %w", err)
	}

	return a, nil
}

// RecordAdminAction appends a row to the admin audit trail.
func (s *Store) RecordAdminAction(ctx context.Context, username, action, detail string) error {
	id, err := auth.GenerateID(16)
	if err != nil {
		return fmt.Errorf("failed to generate log ID: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO admin_log (id, username, action, detail, logged_at) VALUES ($1, $2, $3, $4, $5)`,
		id, username, action, detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record admin action: %w", err)
	}

	return nil
}

// AdminLog returns the most recent admin actions, newest first.
func (s *Store) AdminLog(ctx context.Context, limit int) ([]models.AdminLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, action, detail, logged_at
		FROM admin_log
		ORDER BY logged_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin log: %w", err)
	}
	defer rows.Close()

	var entries []models.AdminLogEntry
	for rows.Next() {
		var e models.AdminLogEntry
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &detail, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin log entry: %w", err)
		}
		e.Detail = detail.String
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListVoters returns every registered voter ordered by ID.
func (s *Store) ListVoters(ctx context.Context) ([]models.Voter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, constituency, language, accessibility_flag, enabled, created_at
		FROM voter
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	var voters []models.Voter
	for rows.Next() {
		v, err := scanVoter(rows)
		if err != nil {
			return nil, err
		}
		voters = append(voters, v)
	}

	return voters, rows.Err()
}

// GetVoter looks up a single voter by state-coded ID.
func (s *Store) GetVoter(ctx context.Context, id string) (models.Voter, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, constituency, language, accessibility_flag, enabled, created_at
		FROM voter
		WHERE id = $1`, id)

	v, err := scanVoter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Voter{}, ErrNotFound
	}
	if err != nil {
		return models.Voter{}, err
	}

	return v, nil
}

// CreateVoter registers a new voter. The caller supplies the
// state-coded ID; duplicates are rejected by the primary key.
func (s *Store) CreateVoter(ctx context.Context, req models.CreateVoterRequest) (models.Voter, error) {
	flag := req.AccessibilityFlag
	if flag == "" {
		flag = models.AccessibilityNormal
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voter (id, name, constituency, language, accessibility_flag, enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, 1, $6)`,
		req.VoterID, req.Name, req.Constituency, req.Language, flag, now)
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to create voter: %w", err)
	}

	return models.Voter{
		ID:                req.VoterID,
		Name:              req.Name,
		Constituency:      req.Constituency,
		Language:          req.Language,
		AccessibilityFlag: flag,
		Enabled:           true,
		CreatedAt:         now,
	}, nil
}

// SetVoterEnabled toggles whether a voter may participate.
func (s *Store) SetVoterEnabled(ctx context.Context, id string, enabled bool) error {
	flag := 0
	if enabled {
		flag = 1
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE voter SET enabled = $1 WHERE id = $2`, flag, id)
	if err != nil {
		return fmt.Errorf("failed to update voter: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check voter update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// CreateElection creates a new, initially inactive election.
func (s *Store) CreateElection(ctx context.Context, name string) (models.Election, error) {
	id, err := auth.GenerateID(16)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to generate election ID: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO election (id, name, active, created_at) VALUES ($1, $2, 0, $3)`,
		id, name, now)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to create election: %w", err)
	}

	return models.Election{ID: id, Name: name, CreatedAt: now}, nil
}

// ListElections returns all elections with their assigned candidates.
func (s *Store) ListElections(ctx context.Context) ([]models.Election, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, active, created_at FROM election ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	var elections []models.Election
	index := make(map[string]int)
	for rows.Next() {
		var e models.Election
		var active int
		if err := rows.Scan(&e.ID, &e.Name, &active, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		e.Active = active != 0
		index[e.ID] = len(elections)
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	assignments, err := s.db.QueryContext(ctx,
		`SELECT election_id, candidate_id FROM election_candidate ORDER BY candidate_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query election candidates: %w", err)
	}
	defer assignments.Close()

	for assignments.Next() {
		var electionID string
		var candidateID int
		if err := assignments.Scan(&electionID, &candidateID); err != nil {
			return nil, fmt.Errorf("failed to scan election candidate: %w", err)
		}
		if i, ok := index[electionID]; ok {
			elections[i].CandidateIDs = append(elections[i].CandidateIDs, candidateID)
		}
	}

	return elections, assignments.Err()
}

// SetElectionActive toggles an election's active flag.
func (s *Store) SetElectionActive(ctx context.Context, id string, active bool) error {
	flag := 0
	if active {
		flag = 1
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE election SET active = $1 WHERE id = $2`, flag, id)
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check election update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// AssignCandidate adds a candidate to an election's ballot. Assigning
// the same candidate twice is a no-op.
func (s *Store) AssignCandidate(ctx context.Context, electionID string, candidateID int) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM election WHERE id = $1`, electionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check election: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO election_candidate (election_id, candidate_id)
		VALUES ($1, $2)
		ON CONFLICT (election_id, candidate_id) DO NOTHING`,
		electionID, candidateID)
	if err != nil {
		return fmt.Errorf("failed to assign candidate: %w", err)
	}

	return nil
}

// RemoveCandidate removes a candidate from an election's ballot.
func (s *Store) RemoveCandidate(ctx context.Context, electionID string, candidateID int) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM election_candidate WHERE election_id = $1 AND candidate_id = $2`,
		electionID, candidateID)
	if err != nil {
		return fmt.Errorf("failed to remove candidate: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check candidate removal: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanVoter(row scannable) (models.Voter, error) {
	var v models.Voter
	var constituency, language sql.NullString
	var enabled int
	err := row.Scan(&v.ID, &v.Name, &constituency, &language, &v.AccessibilityFlag, &enabled, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Voter{}, sql.ErrNoRows
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to scan voter: %w", err)
	}

	v.Constituency = constituency.String
	v.Language = language.String
	v.Enabled = enabled != 0

	return v, nil
}
