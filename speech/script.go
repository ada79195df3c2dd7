// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package speech

import (
	"context"
	"sync"
)

// ScriptListener replays a fixed sequence of transcripts, one per listen
// call, and returns empty transcripts once the script is exhausted. It is
// the test double for Listener.
type ScriptListener struct {
	mu          sync.Mutex
	Transcripts []string
	calls       int
}

func (l *ScriptListener) Listen(ctx context.Context, opts Options) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls > len(l.Transcripts) {
		return "", nil
	}
	return l.Transcripts[l.calls-1], nil
}

// Calls reports how many listen calls have been made.
func (l *ScriptListener) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// RecordingSpeaker captures everything spoken, for assertions in tests.
type RecordingSpeaker struct {
	mu    sync.Mutex
	Lines []string
}

func (s *RecordingSpeaker) Speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lines = append(s.Lines, text)
}

// Spoken returns a copy of everything spoken so far.
func (s *RecordingSpeaker) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Lines...)
}

// NullSpeaker discards all prompts.
type NullSpeaker struct{}

func (NullSpeaker) Speak(string) {}
