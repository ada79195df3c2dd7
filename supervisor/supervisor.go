// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/09samarth/ai-voting-system/models"
	"github.com/09samarth/ai-voting-system/status"
)

// ErrSessionNotFound is returned when polling or resetting an unknown session.
var ErrSessionNotFound = errors.New("session not found")

// DefaultEvictAfter is how long a finished session survives without being
// polled before the janitor forgets it.
const DefaultEvictAfter = 10 * time.Minute

// Config describes how workers are launched and where their artifacts live.
type Config struct {
	// WorkerCommand is the worker invocation; the session ID is appended
	// as the sole extra argument.
	WorkerCommand []string

	// MailboxDir is where session status mailboxes are written.
	MailboxDir string

	// LogDir receives one diagnostic log file per worker.
	LogDir string

	// EvictAfter bounds how long finished, unpolled sessions are retained.
	// Zero means DefaultEvictAfter.
	EvictAfter time.Duration
}

// session tracks one live or recently finished worker.
type session struct {
	id      string
	cmd     *exec.Cmd
	logFile *os.File
	mailbox *status.Mailbox

	mu         sync.Mutex
	exited     bool
	exitedAt   time.Time
	exitErr    error
	last       *status.Record // most recent record surfaced to a poller
	sawSuccess bool
}

func (s *session) markExited(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exited = true
	s.exitedAt = time.Now()
	s.exitErr = err
}

func (s *session) exitState() (exited bool, exitedAt time.Time, exitErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited, s.exitedAt, s.exitErr
}

// Registry owns the table of voting sessions on the server side. One worker
// process is launched per session; the registry never blocks on a worker,
// all status retrieval is via non-blocking polls of the session mailbox.
type Registry struct {
	cfg Config

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:      cfg,
		sessions: make(map[string]*session),
	}
}

func (r *Registry) evictAfter() time.Duration {
	if r.cfg.EvictAfter > 0 {
		return r.cfg.EvictAfter
	}
	return DefaultEvictAfter
}

// Start launches a new voting session: a fresh time-based session ID, a
// dedicated log file, and one worker process with the session ID as its
// sole argument.
func (r *Registry) Start() (string, error) {
	if len(r.cfg.WorkerCommand) == 0 {
		return "", errors.New("no worker command configured")
	}
	if err := os.MkdirAll(r.cfg.LogDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := os.MkdirAll(r.cfg.MailboxDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create mailbox directory: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Time-based IDs, bumped on the rare collision, so any ID ever handed
	// out maps to at most one worker.
	sid := strconv.FormatInt(time.Now().UnixNano(), 10)
	for r.sessions[sid] != nil {
		sid = strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	logPath := filepath.Join(r.cfg.LogDir, "worker_"+sid+".log")
	logFile, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create worker log: %w", err)
	}

	argv := append(append([]string{}, r.cfg.WorkerCommand...), sid)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		os.Remove(logPath)
		return "", fmt.Errorf("failed to start voice worker: %w", err)
	}

	s := &session{
		id:      sid,
		cmd:     cmd,
		logFile: logFile,
		mailbox: status.NewMailbox(r.cfg.MailboxDir, sid),
	}
	r.sessions[sid] = s

	go func() {
		err := cmd.Wait()
		logFile.Close()
		s.markExited(err)
		if err != nil {
			slog.Warn("voice worker exited abnormally", "session_id", sid, "error", err)
		} else {
			slog.Info("voice worker finished", "session_id", sid)
		}
	}()

	slog.Info("voice worker started", "session_id", sid, "pid", cmd.Process.Pid, "log", logPath)
	return sid, nil
}

// Poll surfaces the current state of a session without blocking on the
// worker. While the worker is alive it reports the latest progress (or a
// just-started placeholder); once the worker has exited it reports the
// stored terminal status, downgrading to an error when the exit was
// abnormal and no success was ever recorded.
func (r *Registry) Poll(sessionID string) (models.VotingStatusResponse, error) {
	r.mu.Lock()
	s := r.sessions[sessionID]
	r.mu.Unlock()
	if s == nil {
		return models.VotingStatusResponse{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A missing mailbox means the worker has not written yet, never an
	// error; fall back to whatever was surfaced before.
	if rec, ok, err := s.mailbox.Read(); err != nil {
		slog.Error("failed to read session mailbox", "session_id", sessionID, "error", err)
	} else if ok {
		s.last = &rec
		if rec.Status == status.StateSuccess || (rec.Final() && *rec.Success) {
			s.sawSuccess = true
		}
	}

	if !s.exited {
		if s.last == nil {
			return models.VotingStatusResponse{
				Status:  status.StateListening,
				Step:    1,
				Message: "Starting voice voting...",
			}, nil
		}
		return responseFrom(*s.last), nil
	}

	// Worker has exited: surface the stored status and consume the mailbox.
	resp := models.VotingStatusResponse{
		Status:  status.StateCompleted,
		Step:    status.FinalStep,
		Message: "Process completed",
	}
	if s.last != nil {
		resp = responseFrom(*s.last)
	} else {
		// Process-level success alone does not imply domain-level success;
		// an empty mailbox after exit is an anomaly worth recording.
		slog.Warn("worker exited without reporting any status", "session_id", sessionID)
	}

	if s.exitErr != nil && !s.sawSuccess {
		resp.Status = status.StateError
		resp.Message = "Voice processing failed"
	}

	if err := s.mailbox.Remove(); err != nil {
		slog.Error("failed to remove session mailbox", "session_id", sessionID, "error", err)
	}

	return resp, nil
}

// Reset forcibly terminates a session: the worker is killed if still alive,
// the mailbox is deleted, and the session is forgotten.
func (r *Registry) Reset(sessionID string) error {
	r.mu.Lock()
	s := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()
	if s == nil {
		return ErrSessionNotFound
	}

	if exited, _, _ := s.exitState(); !exited {
		// Cancellation is non-cooperative: the worker performs no
		// mid-listen checks, so a hard kill is the only option.
		if err := s.cmd.Process.Kill(); err != nil {
			slog.Warn("failed to kill voice worker", "session_id", sessionID, "error", err)
		}
	}

	if err := s.mailbox.Remove(); err != nil {
		return err
	}

	slog.Info("voting session reset", "session_id", sessionID)
	return nil
}

// Sessions returns the number of tracked sessions.
func (r *Registry) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictStale forgets sessions whose worker exited longer than the eviction
// window ago. Their mailboxes are removed as well. Returns how many
// sessions were evicted.
func (r *Registry) EvictStale(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		exited, exitedAt, _ := s.exitState()
		if !exited || now.Sub(exitedAt) < r.evictAfter() {
			continue
		}
		if err := s.mailbox.Remove(); err != nil {
			slog.Warn("failed to remove mailbox during eviction", "session_id", id, "error", err)
		}
		delete(r.sessions, id)
		evicted++
	}

	if evicted > 0 {
		slog.Info("evicted stale voting sessions", "count", evicted)
	}
	return evicted
}

// RunJanitor evicts stale sessions on an interval until ctx is cancelled.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.EvictStale(now)
		}
	}
}

func responseFrom(rec status.Record) models.VotingStatusResponse {
	resp := models.VotingStatusResponse{
		Status:  rec.Status,
		Step:    rec.Step,
		Message: rec.Message,
	}
	if rec.Final() {
		resp.Result = &models.VoteResult{
			Success:   *rec.Success,
			Message:   rec.Message,
			VoterID:   rec.VoterID,
			Candidate: rec.Candidate,
		}
	}
	return resp
}
