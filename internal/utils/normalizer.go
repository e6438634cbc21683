package utils

import "strings"

// NormalizeHeader canonicalizes a header string for equality comparison:
// lowercase, runs of whitespace collapsed to single spaces, leading and
// trailing space trimmed. Idempotent. Never used for display.
func NormalizeHeader(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(header)), " ")
}
