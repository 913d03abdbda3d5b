// Package answer decides whether a typed command matches a card's answer.
package answer

import (
	"regexp"
	"strings"
)

var (
	optionsMarker = regexp.MustCompile(`\[options\]`)
	bracketed     = regexp.MustCompile(`\[[^\]]+\]`)
	placeholder   = regexp.MustCompile(`<[^>]+>`)
)

// Normalize reduces a command to the form used for comparison.
//
// Normalization rules:
// - Comparison is case-insensitive
// - Optional syntax in square brackets is dropped (e.g. "[--title <t>]")
// - Angle-bracket placeholders are dropped (e.g. "<branch>")
// - Runs of whitespace collapse to one space; leading and trailing space is trimmed
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = optionsMarker.ReplaceAllString(s, "")
	s = bracketed.ReplaceAllString(s, "")
	s = placeholder.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// IsCorrect reports whether the learner's input matches the canonical answer.
// Blank input is never correct.
func IsCorrect(input, canonical string) bool {
	in := Normalize(input)
	if in == "" {
		return false
	}
	return in == Normalize(canonical)
}
