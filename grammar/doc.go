// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package grammar parses spoken numeric voter IDs.

# Voter ID Format

Voter IDs are synthetic, numeric-only identifiers of the form
StateCode-VoterNumber (e.g., 1-12, 2-45, 3-78). Voters speak only numbers;
the first digit is the state code, the remaining digits form the voter
number:

	id, echo, ok := grammar.Parse("one one two")
	// id == "1-12", echo == "one one two", ok == true

# Accepted Input

Tokens may be digit words ("one"), common homophones the recognizer
produces ("oh" for 0, "for" for 4, "to"/"too" for 2), or digit strings.
Multi-digit strings are split positionally, so "1 1 2", "one one two" and
"112" all parse to the same ID.

# Rejection

Parsing is all-or-nothing: a single non-numeric token anywhere rejects the
entire transcript, and fewer than two collected digits is a rejection.
Parse is pure and total; it never returns an error.
*/
package grammar
