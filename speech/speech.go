// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package speech

import (
	"context"
	"time"
)

// Engine identifies a speech-to-text engine preference.
type Engine string

const (
	// EngineVosk prefers the offline Vosk recognizer.
	EngineVosk Engine = "vosk"
	// EngineWhisper prefers a whisper.cpp recognizer.
	EngineWhisper Engine = "whisper"
)

// Options configures a single blocking listen call.
type Options struct {
	// Engine is a hint for which recognizer backend to prefer.
	Engine Engine

	// Timeout bounds how long the call may block waiting for speech.
	Timeout time.Duration

	// DeviceIndex selects the capture device.
	DeviceIndex int

	// EnergyThreshold overrides the recognizer's silence threshold.
	// Zero leaves the engine default in place.
	EnergyThreshold int

	// DynamicEnergy lets the recognizer adapt the threshold to ambient noise.
	DynamicEnergy bool
}

// Listener captures one utterance and returns its transcript.
//
// A listen call blocks for at most opts.Timeout. Silence or an unintelligible
// utterance yields an empty transcript and a nil error; errors are reserved
// for engine failures.
type Listener interface {
	Listen(ctx context.Context, opts Options) (string, error)
}

// Speaker reads text aloud, blocking until spoken.
//
// Speaking is best effort: implementations must swallow their own failures
// rather than propagate them, so a broken audio device never aborts a
// voting session.
type Speaker interface {
	Speak(text string)
}
