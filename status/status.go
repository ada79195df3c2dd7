// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// States a session status record can carry.
const (
	StateListening = "listening"
	StateSuccess   = "success"
	StateError     = "error"
	StateCompleted = "completed"
)

// FinalStep is the step number every terminal record reports.
const FinalStep = 3

// Record is the single JSON document held in a session mailbox. Progress
// records carry only step, status, message and timestamp; terminal records
// additionally carry the success flag and, on success, the confirmed voter
// ID and candidate name.
type Record struct {
	Step      int       `json:"step"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`

	Success   *bool  `json:"success,omitempty"`
	VoterID   string `json:"voter_id,omitempty"`
	Candidate string `json:"candidate,omitempty"`
}

// Final reports whether the record is a terminal result.
func (r Record) Final() bool { return r.Success != nil }

// Reporter is the worker-side surface for publishing session progress.
// The capture engine and voting flow write through it; tests substitute an
// in-memory implementation.
type Reporter interface {
	Progress(step int, state, message string) error
	Final(success bool, message, voterID, candidate string) error
}

// Mailbox is a per-session, file-based status channel: the worker writes,
// the server polls. Every write replaces the whole record; there is no
// append log. A missing file means the session is still in progress.
type Mailbox struct {
	dir       string
	sessionID string
	lastStep  int
}

// NewMailbox returns the mailbox for a session. dir must already exist.
func NewMailbox(dir, sessionID string) *Mailbox {
	return &Mailbox{dir: dir, sessionID: sessionID}
}

// Path returns the mailbox file location for this session.
func (m *Mailbox) Path() string {
	return filepath.Join(m.dir, "status_"+m.sessionID+".json")
}

// Progress publishes an intermediate status update. The reported step never
// decreases: a stale step is clamped to the highest step seen so far.
func (m *Mailbox) Progress(step int, state, message string) error {
	if step < m.lastStep {
		step = m.lastStep
	}
	m.lastStep = step

	return m.write(Record{
		Step:      step,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Final publishes the terminal result for the session.
func (m *Mailbox) Final(success bool, message, voterID, candidate string) error {
	state := StateCompleted
	if !success {
		state = StateError
	}
	m.lastStep = FinalStep

	return m.write(Record{
		Step:      FinalStep,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
		Success:   &success,
		VoterID:   voterID,
		Candidate: candidate,
	})
}

// write replaces the mailbox contents atomically so a concurrent poll never
// observes a half-written record.
func (m *Mailbox) write(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode status record: %w", err)
	}

	tmp := m.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write status record: %w", err)
	}
	if err := os.Rename(tmp, m.Path()); err != nil {
		return fmt.Errorf("failed to publish status record: %w", err)
	}
	return nil
}

// Read returns the latest record for the session. ok is false when no record
// has been written yet, which callers must interpret as "still in progress",
// never as an error.
func (m *Mailbox) Read() (rec Record, ok bool, err error) {
	data, err := os.ReadFile(m.Path())
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to read status record: %w", err)
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("failed to decode status record: %w", err)
	}
	return rec, true, nil
}

// Remove deletes the mailbox file. Removing an already-consumed mailbox is
// not an error.
func (m *Mailbox) Remove() error {
	err := os.Remove(m.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove status record: %w", err)
	}
	return nil
}
