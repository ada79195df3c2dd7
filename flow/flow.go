// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/09samarth/ai-voting-system/capture"
	"github.com/09samarth/ai-voting-system/models"
	"github.com/09samarth/ai-voting-system/speech"
	"github.com/09samarth/ai-voting-system/status"
)

// Store is the narrow persistence surface the voting flow consumes.
type Store interface {
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	RecordVote(ctx context.Context, voterToken string, candidateID int) error
}

// choiceTimeout bounds the single candidate-choice and final-confirmation
// listens.
const choiceTimeout = 15 * time.Second

var digitPattern = regexp.MustCompile(`\b(\d+)\b`)

var ordinalPattern = regexp.MustCompile(`\b(one|first|two|second|three|third)\b`)

var ordinalWords = map[string]int{
	"one":    1,
	"first":  1,
	"two":    2,
	"second": 2,
	"three":  3,
	"third":  3,
}

// Orchestrator sequences the full voting interaction: identity capture,
// candidate selection, and final confirmation.
//
// The flow is deliberately asymmetric. Identity capture is verbose and
// retried (the capture engine's outer and confirmation budgets); candidate
// choice and final confirmation are single-shot and strictly terminal on
// any ambiguity.
type Orchestrator struct {
	Store    Store
	Listener speech.Listener
	Speaker  speech.Speaker
	Reporter status.Reporter
	Log      *slog.Logger
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Log != nil {
		return o.Log
	}
	return slog.Default()
}

// Run drives one voting session to completion. Whatever happens inside,
// including panics in collaborators, exactly one terminal status is written
// before Run returns.
func (o *Orchestrator) Run(ctx context.Context) {
	guard := &terminalGuard{inner: o.Reporter}

	defer func() {
		if r := recover(); r != nil {
			o.logger().Error("panic in voting flow", "panic", r)
			o.fail(guard, fmt.Sprintf("Error during voice voting: %v", r))
		}
		// The worker must never exit without a recorded terminal status.
		guard.ensure(o.logger())
	}()

	err := o.run(ctx, guard)
	if err == nil || errors.Is(err, errReported) {
		return
	}
	o.logger().Error("voting flow failed", "error", err)
	o.fail(guard, "Error during voice voting: "+err.Error())
}

func (o *Orchestrator) run(ctx context.Context, guard *terminalGuard) error {
	// Step 1: capture and confirm the voter ID.
	engine := &capture.Engine{
		Listener: o.Listener,
		Speaker:  o.Speaker,
		Reporter: guard,
		Log:      o.Log,
	}
	voterID, _, err := engine.Run(ctx)
	if errors.Is(err, capture.ErrNotConfirmed) {
		// The engine has already spoken and recorded the failure.
		return errReported
	}
	if err != nil {
		return err
	}

	// Step 2: candidate selection, single listen, no retry.
	candidate, err := o.selectCandidate(ctx, guard)
	if err != nil {
		return err
	}

	// Step 3: final confirmation, single listen, no retry.
	return o.confirmVote(ctx, guard, voterID, candidate)
}

func (o *Orchestrator) selectCandidate(ctx context.Context, guard *terminalGuard) (models.Candidate, error) {
	o.progress(guard, 2, status.StateListening, "LISTENING: Say your candidate choice (1, 2, or 3)")

	candidates, err := o.Store.ListCandidates(ctx)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to load candidates: %w", err)
	}

	o.Speaker.Speak("Excellent! Now I will read the list of candidates.")
	o.Speaker.Speak("Listen carefully to all candidates before making your choice.")
	for _, c := range candidates {
		o.Speaker.Speak(fmt.Sprintf("Candidate number %d is %s", c.ID, c.Name))
	}
	o.Speaker.Speak("Please say just the number of your chosen candidate.")
	o.Speaker.Speak("I am listening for your choice...")

	heard, err := o.listen(ctx)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("choice listen failed: %w", err)
	}

	if heard == "" {
		o.Speaker.Speak("I didn't hear your candidate choice clearly.")
		o.Speaker.Speak("Please say just the number: 1, 2, or 3.")
		o.fail(guard, "No candidate choice heard - please say 1, 2, or 3 clearly.")
		return models.Candidate{}, errors.Join(errReported, ErrChoiceTimeout)
	}

	o.Speaker.Speak("I heard you say: " + heard)

	candidateID, ok := parseChoice(heard)
	if !ok {
		// Embed the literal heard text so the display and the audio carry
		// identical information.
		message := fmt.Sprintf("Invalid candidate choice: I heard '%s'. Please say just the number: 1, 2, or 3.", heard)
		o.Speaker.Speak("Please say exactly: 1, 2, or 3.")
		o.fail(guard, message)
		return models.Candidate{}, errors.Join(errReported, ErrChoiceUnparseable)
	}

	for _, c := range candidates {
		if c.ID == candidateID {
			o.progress(guard, 2, status.StateSuccess, "Candidate selected: "+c.Name)
			o.Speaker.Speak("You selected " + c.Name)
			return c, nil
		}
	}

	o.fail(guard, fmt.Sprintf("Invalid candidate number: %d", candidateID))
	return models.Candidate{}, errors.Join(errReported, ErrChoiceInvalid)
}

func (o *Orchestrator) confirmVote(ctx context.Context, guard *terminalGuard, voterID string, candidate models.Candidate) error {
	o.progress(guard, 3, status.StateListening, `LISTENING: Say "confirm" to cast your vote or "cancel" to abort`)

	o.Speaker.Speak(fmt.Sprintf("Perfect! You have chosen %s.", candidate.Name))
	o.Speaker.Speak("Now I need your final confirmation to cast your vote.")
	o.Speaker.Speak("Say 'confirm' to cast your vote for this candidate.")
	o.Speaker.Speak("Or say 'cancel' to abort and not vote.")
	o.Speaker.Speak("I am listening for your confirmation...")

	heard, err := o.listen(ctx)
	if err != nil {
		return fmt.Errorf("confirmation listen failed: %w", err)
	}

	if heard == "" {
		o.Speaker.Speak("I didn't hear your confirmation clearly.")
		o.fail(guard, "No confirmation heard. Say 'confirm' to vote or 'cancel' to abort.")
		return errors.Join(errReported, ErrVoteAborted)
	}

	o.Speaker.Speak("I heard you say: " + heard)

	if !strings.Contains(strings.ToLower(heard), "confirm") {
		message := fmt.Sprintf("Vote cancelled: I heard '%s' but need 'confirm' to vote.", heard)
		o.Speaker.Speak("Your vote has been cancelled for security.")
		o.Speaker.Speak("Please start again if you want to vote.")
		o.fail(guard, message)
		return errors.Join(errReported, ErrVoteAborted)
	}

	if err := o.Store.RecordVote(ctx, voterID, candidate.ID); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	o.logger().Info("vote recorded", "voter_id", voterID, "candidate_id", candidate.ID)

	o.Speaker.Speak("Excellent! Your vote has been successfully recorded.")
	o.Speaker.Speak(fmt.Sprintf("You voted for %s.", candidate.Name))
	o.Speaker.Speak("Thank you for voting!")

	message := fmt.Sprintf("Vote successfully recorded for %s!", candidate.Name)
	if err := guard.Final(true, message, voterID, candidate.Name); err != nil {
		o.logger().Error("failed to publish terminal success", "error", err)
	}
	return nil
}

// parseChoice extracts a candidate number from the choice utterance: an
// explicit digit wins, then the recognized ordinal words.
func parseChoice(heard string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(heard))

	if m := digitPattern.FindString(lower); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return n, true
		}
	}

	if m := ordinalPattern.FindString(lower); m != "" {
		return ordinalWords[m], true
	}

	return 0, false
}

func (o *Orchestrator) listen(ctx context.Context) (string, error) {
	heard, err := o.Listener.Listen(ctx, speech.Options{
		Engine:        speech.EngineVosk,
		Timeout:       choiceTimeout,
		DeviceIndex:   1,
		DynamicEnergy: true,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(heard), nil
}

func (o *Orchestrator) progress(guard *terminalGuard, step int, state, message string) {
	if err := guard.Progress(step, state, message); err != nil {
		o.logger().Error("failed to publish progress", "error", err)
	}
}

// fail speaks and records a terminal failure with identical text.
func (o *Orchestrator) fail(guard *terminalGuard, message string) {
	o.Speaker.Speak(message)
	if err := guard.Final(false, message, "", ""); err != nil {
		o.logger().Error("failed to publish terminal failure", "error", err)
	}
}
