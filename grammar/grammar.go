// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package grammar

import (
	"regexp"
	"strings"
)

// Voter IDs are numeric only and state coded: the first spoken digit is the
// state code, the remaining digits form the voter number. "one one two"
// therefore maps to voter ID "1-12".
var digitWords = map[string]string{
	"zero":  "0",
	"oh":    "0", // common recognition for 0
	"o":     "0", // safety for "o" vs zero
	"one":   "1",
	"two":   "2",
	"too":   "2",
	"to":    "2",
	"three": "3",
	"four":  "4",
	"for":   "4", // STT often hears "for" instead of "four"
	"five":  "5",
	"six":   "6",
	"seven": "7",
	"eight": "8",
	"nine":  "9",
}

var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Parse converts a raw spoken transcript into a state-coded voter ID.
//
// Rules:
//   - Accept ONLY numeric content (digits 0-9 or their word forms).
//   - The first digit is the state code.
//   - Remaining digits form the voter number (leading zeros collapse).
//
// Any non-numeric token rejects the entire transcript; there is no partial
// acceptance. At least two digits are required. The second return value is
// the normalized phrase read back to the user, echoing exactly the tokens
// that were accepted.
//
// Parse never fails with an error: invalid input yields ok == false.
func Parse(transcript string) (voterID, normalized string, ok bool) {
	if transcript == "" {
		return "", "", false
	}

	tokens := tokenPattern.FindAllString(strings.ToLower(transcript), -1)
	if len(tokens) == 0 {
		return "", "", false
	}

	var digits []string
	var echoed []string

	for _, token := range tokens {
		if d, found := digitWords[token]; found {
			digits = append(digits, d)
			echoed = append(echoed, token)
			continue
		}
		if isAllDigits(token) {
			// Split multi-digit strings into individual digits to preserve position.
			for _, ch := range token {
				digits = append(digits, string(ch))
				echoed = append(echoed, string(ch))
			}
			continue
		}
		// Any non-numeric word makes the whole transcript invalid.
		return "", "", false
	}

	if len(digits) < 2 {
		// Need at least one digit for the state code and one for the number.
		return "", "", false
	}

	stateCode := digits[0]
	voterNumber := collapseZeros(strings.Join(digits[1:], ""))

	return stateCode + "-" + voterNumber, strings.Join(echoed, " "), true
}

func isAllDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(s) > 0
}

// collapseZeros normalizes the voter number the way integer parsing would:
// "045" becomes "45", "00" becomes "0".
func collapseZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
