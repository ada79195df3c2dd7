// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package status

import (
	"sync"
	"time"
)

// MemoryReporter collects status records in memory. It backs the capture and
// flow tests, where no mailbox file is wanted.
type MemoryReporter struct {
	mu      sync.Mutex
	Records []Record
}

func (r *MemoryReporter) Progress(step int, state, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = append(r.Records, Record{
		Step:      step,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
	})
	return nil
}

func (r *MemoryReporter) Final(success bool, message, voterID, candidate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := StateCompleted
	if !success {
		state = StateError
	}
	r.Records = append(r.Records, Record{
		Step:      FinalStep,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
		Success:   &success,
		VoterID:   voterID,
		Candidate: candidate,
	})
	return nil
}

// Finals returns the terminal records written so far.
func (r *MemoryReporter) Finals() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var finals []Record
	for _, rec := range r.Records {
		if rec.Final() {
			finals = append(finals, rec)
		}
	}
	return finals
}

// Last returns the most recent record, if any.
func (r *MemoryReporter) Last() (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Records) == 0 {
		return Record{}, false
	}
	return r.Records[len(r.Records)-1], true
}
