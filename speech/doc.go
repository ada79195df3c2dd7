// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package speech abstracts the speech-to-text and text-to-speech capabilities
the voice worker depends on.

# Interfaces

Two narrow interfaces cover everything the voting flow needs:

	type Listener interface {
		Listen(ctx context.Context, opts Options) (string, error)
	}

	type Speaker interface {
		Speak(text string)
	}

Listen blocks for a bounded duration and returns the transcript of one
utterance, or an empty string for silence. Speak blocks until the text has
been read aloud and never reports failure; audio output problems must not
abort a voting session.

# Adapters

ExecListener and ExecSpeaker shell out to configurable recognizer and
synthesizer commands, keeping the concrete engines out of process. Listen
parameters (engine hint, timeout, device index, energy settings) are passed
through the environment.

ScriptListener, RecordingSpeaker and NullSpeaker are in-memory doubles used
by the capture and flow tests.
*/
package speech
