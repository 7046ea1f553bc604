package utils

import (
	"strings"
	"unicode/utf8"
)

// Preview flattens s onto a single line and cuts it to limit runes, so
// multi-line prompts and model replies stay readable in log output.
func Preview(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
