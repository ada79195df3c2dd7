// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoCommand is returned when an ExecListener has no recognizer configured.
var ErrNoCommand = errors.New("no recognizer command configured")

// ExecListener shells out to an external speech-to-text command for each
// utterance. The recognizer runs once per listen call, prints the transcript
// to stdout, and exits; listen parameters are passed through the environment
// so any recognizer wrapper script can consume them.
//
// The engines themselves (Vosk, Whisper, cloud STT) stay outside this
// codebase; this adapter is the only coupling point.
type ExecListener struct {
	// Command is the recognizer invocation, e.g. "python3 recognize.py".
	Command string
}

// Listen runs the recognizer command and returns its trimmed stdout.
// A timeout is treated as silence, not as an error.
func (l *ExecListener) Listen(ctx context.Context, opts Options) (string, error) {
	argv := strings.Fields(l.Command)
	if len(argv) == 0 {
		return "", ErrNoCommand
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(cmd.Environ(),
		"LISTEN_ENGINE="+string(opts.Engine),
		"LISTEN_TIMEOUT="+strconv.Itoa(int(opts.Timeout.Seconds())),
		"LISTEN_DEVICE="+strconv.Itoa(opts.DeviceIndex),
		"LISTEN_ENERGY="+strconv.Itoa(opts.EnergyThreshold),
		"LISTEN_DYNAMIC_ENERGY="+strconv.FormatBool(opts.DynamicEnergy),
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		// The utterance window elapsed without a result: no speech.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("recognizer command failed: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// ExecSpeaker shells out to an external text-to-speech command, passing the
// text as the final argument. Failures are logged and swallowed.
type ExecSpeaker struct {
	// Command is the synthesizer invocation, e.g. "espeak" or "say".
	Command string
}

// Speak blocks until the synthesizer command finishes. A missing command or
// a failed invocation is logged and otherwise ignored.
func (s *ExecSpeaker) Speak(text string) {
	argv := strings.Fields(s.Command)
	if len(argv) == 0 {
		slog.Debug("no speaker command configured, dropping prompt", "text", text)
		return
	}

	cmd := exec.Command(argv[0], append(argv[1:], text)...)
	if err := cmd.Run(); err != nil {
		slog.Warn("text-to-speech failed", "error", err, "text", text)
	}
}
