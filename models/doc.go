// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared by
the API handlers, the supervisor, and the voice worker.

# Domain Types

  - Candidate: (id, name), the fixed ordered ballot read aloud to voters
  - Voter: synthetic state-coded voter records managed by admins
  - Election: named grouping of candidates with an active flag
  - VoteTotal / VoteLogEntry / AdminLogEntry: aggregation and audit rows

# Session Types

VotingStatusResponse is what the polling endpoint returns; its Result field
is nil until the worker reports a terminal outcome, after which it carries
the VoteResult (success flag, message, voter ID, candidate name).

Sensitive fields (admin password hashes) are excluded from JSON with the
"-" tag.
*/
package models
