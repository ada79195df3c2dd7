// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package capture implements the capture-and-confirm state machine for spoken
voter IDs.

# State Machine

	AwaitCapture → AwaitConfirmation → {Confirmed | Failed}

AwaitCapture prompts for a numeric voter ID and parses the reply with the
grammar package. Silence or a grammar rejection consumes one outer attempt
and re-enters AwaitCapture; a successful parse moves to AwaitConfirmation
with a fresh confirmation budget.

AwaitConfirmation reads the parsed ID back and listens for yes/no. A reply
containing "yes" confirms; "no" or an exhausted confirmation budget falls
back to AwaitCapture (still consuming the outer attempt that produced the
ID); an ambiguous reply retries while confirmation attempts remain.

Exhausting the outer budget reaches Failed, which writes the terminal
failure to the status channel before Run returns ErrNotConfirmed.

# Budgets

The defaults are three outer attempts and two confirmation attempts per
captured ID, so Run always terminates within a 3×2 interaction bound
regardless of input.

# Prompts

The first outer attempt uses an extended onboarding script; later attempts
use a shorter retry script. Every prompt is spoken, and terminal failure
text is spoken and written to the status channel verbatim.
*/
package capture
