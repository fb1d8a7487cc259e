package textutil

import "strings"

// SingleLine collapses runs of whitespace, including newlines from scripting
// tracebacks, into single spaces.
func SingleLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Truncate shortens value to at most limit runes, marking the cut with an
// ellipsis. A non-positive limit disables truncation.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
