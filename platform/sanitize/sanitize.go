// Package sanitize provides input normalization for form and query values.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s has a basic local@domain.tld shape with a
// top-level label of at least two letters. Empty input is invalid.
func ValidEmail(s string) bool {
	if s == "" {
		return false
	}
	return emailRegex.MatchString(s)
}

// Text trims surrounding whitespace and HTML-escapes the result. The returned
// value is safe to interpolate into HTML without further escaping. Empty
// input yields the empty string.
func Text(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return html.EscapeString(trimmed)
}
