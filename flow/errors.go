// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package flow

import "errors"

// Terminal failure classes of the voting flow. Choice and confirmation
// errors are never retried; they end the session with a terminal status.
var (
	// ErrChoiceTimeout: no candidate choice heard within the listen window.
	ErrChoiceTimeout = errors.New("no candidate choice heard")

	// ErrChoiceUnparseable: the choice utterance matched neither the digit
	// pattern nor a recognized ordinal word.
	ErrChoiceUnparseable = errors.New("candidate choice not understood")

	// ErrChoiceInvalid: a number was understood but is not a candidate.
	ErrChoiceInvalid = errors.New("candidate number does not exist")

	// ErrVoteAborted: the voter declined at final confirmation.
	ErrVoteAborted = errors.New("vote cancelled at final confirmation")

	// errReported marks failures whose terminal status has already been
	// published, so the outer boundary must not publish a second one.
	errReported = errors.New("terminal status already reported")
)
