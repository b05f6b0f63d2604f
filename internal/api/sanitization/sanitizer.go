package sanitization

import (
	"strings"
	"unicode"
)

// SanitizeLine prepares a single-line field: line breaks and tabs become
// spaces, other control characters are dropped and the ends are trimmed.
// Subjects end up in mail headers, so no line breaks survive.
func SanitizeLine(input string) string {
	return strings.TrimSpace(stripControl(input, false))
}

// SanitizeEmail trims surrounding whitespace. Interior whitespace is left
// for the email rule to reject.
func SanitizeEmail(input string) string {
	return strings.TrimSpace(input)
}

// SanitizeMultiline keeps line breaks and tabs but drops other control characters
func SanitizeMultiline(input string) string {
	safe := strings.ReplaceAll(input, "\r\n", "\n")
	safe = stripControl(safe, true)
	return strings.TrimSpace(safe)
}

func stripControl(input string, keepLayout bool) string {
	return strings.Map(func(r rune) rune {
		if keepLayout && (r == '\n' || r == '\t') {
			return r
		}
		if unicode.IsControl(r) {
			if r == '\n' || r == '\r' || r == '\t' {
				return ' '
			}
			return -1
		}
		return r
	}, input)
}
