// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package flow orchestrates one complete voice voting session inside the
worker process.

# Sequence

 1. Capture and confirm the voter ID via the capture engine (retried, up to
    3 outer x 2 confirmation attempts).
 2. Read the candidate list aloud and listen once for a choice. A digit wins
    over ordinal words (one/first, two/second, three/third). Anything else
    is a terminal failure that embeds the literal heard text.
 3. Read the chosen candidate back and listen once for "confirm". Only a
    reply containing "confirm" casts the vote; any other reply cancels.

The asymmetry is deliberate and load-bearing: identity capture is verbose
and forgiving, while choice and final confirmation are single-shot and
strictly terminal on ambiguity.

# Terminal Guarantee

Run never lets the worker exit without exactly one terminal status. Every
failure path publishes a terminal record with text that is also spoken
verbatim, and an outermost recover converts panics in any collaborator into
a terminal failure carrying a description. A guard deduplicates terminal
writes and publishes a fallback if a fault escaped every reporting path.
*/
package flow
