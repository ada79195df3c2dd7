// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package status implements the per-session status mailbox shared between the
voice worker and the server tier.

# Protocol

Each session owns one JSON file, status_<sessionID>.json, in a configured
directory. The worker overwrites the whole file on every meaningful
transition; the server polls it. Two record shapes exist:

  - Progress: step (1-3), status (listening/success/error), message, timestamp
  - Final: the above plus a success flag and, on success, the voter ID and
    candidate name; step is always 3 and status is completed or error

Writes are atomic (temp file + rename), so a poll never sees a torn record.
Intermediate writes may be coalesced: the server only guarantees it observes
the most recent record per poll.

# Invariants

  - A missing file means "still in progress", never an error.
  - The reported step never decreases within a session.
  - Exactly one Final record is produced per session; the worker's outermost
    boundary enforces this.

The mailbox exists only between session creation and consumption or reset;
the supervisor deletes it once the final status has been surfaced.
*/
package status
