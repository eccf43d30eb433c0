package utils

import (
	"strings"
	"unicode"
)

// Truncate returns s cut down to at most maxRunes runes, with a
// trailing ellipsis when anything got cut. Newlines are flattened so
// the result stays a single row.
func Truncate(s string, maxRunes int) string {
	flat := strings.Join(strings.Fields(s), " ")
	r := []rune(flat)
	if maxRunes <= 0 || len(r) <= maxRunes {
		return flat
	}
	if maxRunes == 1 {
		return "…"
	}
	return string(r[:maxRunes-1]) + "…"
}

// FirstToken splits s into its first whitespace separated token and
// the trimmed remainder
func FirstToken(s string) (string, string) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ""
	}
	i := strings.IndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return trimmed, ""
	}
	return trimmed[:i], strings.TrimSpace(trimmed[i:])
}
