package validators

import (
	"strings"
	"unicode/utf8"
)

// SanitizeString trims whitespace and caps the value at maxLen runes so Arabic
// input is never cut mid-character.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || utf8.RuneCountInString(trimmed) <= maxLen {
		return trimmed
	}
	runes := []rune(trimmed)
	return strings.TrimSpace(string(runes[:maxLen]))
}
