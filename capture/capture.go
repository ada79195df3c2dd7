// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/09samarth/ai-voting-system/grammar"
	"github.com/09samarth/ai-voting-system/speech"
	"github.com/09samarth/ai-voting-system/status"
)

// State is a node in the capture-and-confirm machine.
type State int

const (
	// AwaitCapture listens for a spoken voter ID.
	AwaitCapture State = iota
	// AwaitConfirmation holds a parsed ID and listens for yes/no.
	AwaitConfirmation
	// Confirmed is the successful terminal state.
	Confirmed
	// Failed is the exhausted terminal state.
	Failed
)

// Default attempt budgets.
const (
	DefaultMaxAttempts     = 3
	DefaultConfirmAttempts = 2
)

// Listen windows, matching the bounded-wait contract of the speech layer.
const (
	captureTimeout = 15 * time.Second
	confirmTimeout = 10 * time.Second
)

// ErrNotConfirmed is returned when the engine exhausts its attempt budgets
// without a confirmed voter ID. The terminal failure has already been
// reported to the status channel when this error is seen.
var ErrNotConfirmed = errors.New("voter ID not confirmed")

// Engine captures a numeric state-coded voter ID with a yes/no confirmation
// sub-loop. Every prompt is spoken; progress is published to the status
// channel at each meaningful transition.
type Engine struct {
	Listener speech.Listener
	Speaker  speech.Speaker
	Reporter status.Reporter
	Log      *slog.Logger

	// MaxAttempts bounds the outer capture loop; zero means the default.
	MaxAttempts int
	// ConfirmAttempts bounds the yes/no sub-loop per captured ID; zero
	// means the default.
	ConfirmAttempts int
}

func (e *Engine) maxAttempts() int {
	if e.MaxAttempts > 0 {
		return e.MaxAttempts
	}
	return DefaultMaxAttempts
}

func (e *Engine) confirmAttempts() int {
	if e.ConfirmAttempts > 0 {
		return e.ConfirmAttempts
	}
	return DefaultConfirmAttempts
}

func (e *Engine) logger() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}

// Run drives the state machine to a terminal state and returns the confirmed
// voter ID with its spoken-normalized echo. On failure the terminal status
// has already been written and ErrNotConfirmed is returned.
//
// Termination is bounded: at most MaxAttempts captures, each followed by at
// most ConfirmAttempts confirmation listens.
func (e *Engine) Run(ctx context.Context) (voterID, normalized string, err error) {
	state := AwaitCapture
	attempt := 0
	confirmLeft := 0

	for {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		switch state {
		case AwaitCapture:
			if attempt >= e.maxAttempts() {
				state = Failed
				continue
			}
			attempt++

			state = e.capture(ctx, attempt, &voterID, &normalized)
			if state == AwaitConfirmation {
				confirmLeft = e.confirmAttempts()
			}

		case AwaitConfirmation:
			if confirmLeft == 0 {
				// Confirmation budget spent without a clear yes or no:
				// recapture from scratch. This consumes an outer attempt,
				// since the attempt that produced this ID is already spent.
				state = AwaitCapture
				continue
			}
			confirmLeft--
			state = e.confirm(ctx, voterID, normalized, confirmLeft)

		case Confirmed:
			e.report(1, status.StateSuccess, "Voter ID confirmed: "+voterID)
			e.Speaker.Speak(fmt.Sprintf("Voter I D %s confirmed.", voterID))
			return voterID, normalized, nil

		case Failed:
			e.fail("Unable to confirm a numeric state-coded voter I D after multiple attempts.")
			return "", "", ErrNotConfirmed
		}
	}
}

// capture runs one outer attempt: prompt, listen, parse. It returns the next
// state and, via the out parameters, the parsed ID on success. Capture
// failures on the final attempt short-circuit to Failed with a more specific
// message than generic exhaustion.
func (e *Engine) capture(ctx context.Context, attempt int, voterID, normalized *string) State {
	last := attempt == e.maxAttempts()

	if attempt == 1 {
		e.report(1, status.StateListening, "LISTENING: Say your numeric voter ID, digit by digit.")
		e.Speaker.Speak("Welcome to the voice voting system.")
		e.Speaker.Speak("In this demo, your voter I D is numeric only.")
		e.Speaker.Speak("Please say your voter I D as digits. Start with your state code digit, then say the remaining digits of your voter number.")
		e.Speaker.Speak("Say only numbers. Do not say any letters or special characters.")
		e.Speaker.Speak("I am listening for your voter I D now.")
	} else {
		e.report(1, status.StateListening, "LISTENING: Try again. Say only numbers for your voter I D.")
		e.Speaker.Speak("Let's try again.")
		e.Speaker.Speak("Please say your voter I D using only numbers. Start with your state code digit, then the remaining digits.")
		e.Speaker.Speak("I am listening...")
	}

	heard := e.listen(ctx, captureTimeout)
	e.logger().Info("voter ID capture attempt", "attempt", attempt, "heard", heard)

	if heard == "" {
		e.Speaker.Speak("I did not hear any numbers.")
		if last {
			e.Speaker.Speak("I could not capture your voter I D. Please start a new session and try again.")
			e.fail("No numeric voter I D detected. Please ensure your microphone is working and speak clearly.")
			return Failed
		}
		return AwaitCapture
	}

	e.Speaker.Speak("I heard you say: " + heard)

	id, echo, ok := grammar.Parse(heard)
	if !ok {
		e.Speaker.Speak("I can only accept numeric voter I D values, where you speak the digits one by one.")
		e.Speaker.Speak("Please speak each digit separately, starting with your state code digit, and avoid any letters or extra words.")
		if last {
			e.fail("Invalid voter I D format. Only numeric, state-coded I Ds are accepted in this demo.")
			return Failed
		}
		return AwaitCapture
	}

	*voterID = id
	*normalized = echo
	e.logger().Info("voter ID parsed", "voter_id", id, "normalized", echo)
	return AwaitConfirmation
}

// confirm runs one confirmation listen for the captured ID.
func (e *Engine) confirm(ctx context.Context, voterID, normalized string, remaining int) State {
	e.Speaker.Speak(fmt.Sprintf("You said %s. This maps to voter I D %s. Is this correct?", normalized, voterID))
	e.Speaker.Speak("Say 'yes' to confirm or 'no' to try again.")

	reply := e.listen(ctx, confirmTimeout)
	e.logger().Info("voter ID confirmation reply", "heard", reply)

	if reply == "" {
		e.Speaker.Speak("I did not clearly hear yes or no.")
		if remaining > 0 {
			e.Speaker.Speak("Please say 'yes' if this is correct or 'no' if it is wrong.")
		}
		return AwaitConfirmation
	}

	lower := strings.ToLower(reply)
	switch {
	case strings.Contains(lower, "yes"):
		return Confirmed
	case strings.Contains(lower, "no"):
		e.Speaker.Speak("Okay, we will try entering your voter I D again.")
		return AwaitCapture
	default:
		e.Speaker.Speak("I heard you, but I need you to say exactly 'yes' or 'no' to confirm your voter I D.")
		return AwaitConfirmation
	}
}

func (e *Engine) listen(ctx context.Context, timeout time.Duration) string {
	heard, err := e.Listener.Listen(ctx, speech.Options{
		Engine:        speech.EngineVosk,
		Timeout:       timeout,
		DeviceIndex:   1,
		DynamicEnergy: true,
	})
	if err != nil {
		// An engine failure on one attempt reads as silence; the attempt
		// budget decides whether it becomes terminal.
		e.logger().Error("listen failed", "error", err)
		return ""
	}
	return strings.TrimSpace(heard)
}

func (e *Engine) report(step int, state, message string) {
	if err := e.Reporter.Progress(step, state, message); err != nil {
		e.logger().Error("failed to publish progress", "error", err)
	}
}

// fail speaks and records the terminal failure with identical text, so
// sighted and non-sighted consumers receive the same information.
func (e *Engine) fail(message string) {
	e.Speaker.Speak(message)
	if err := e.Reporter.Final(false, message, "", ""); err != nil {
		e.logger().Error("failed to publish terminal failure", "error", err)
	}
}
