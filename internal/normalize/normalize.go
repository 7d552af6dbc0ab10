// Package normalize canonicalizes free-text tag values so that noisy
// variants of the same artist or title compare equal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "Beyoncé"
// becomes "Beyonce".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key reduces s to a comparison key: lower-cased, diacritics stripped, and
// every character that is not an ASCII letter or digit removed. The empty
// string maps to itself. Key is total and idempotent.
func Key(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)

	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	// On a transform error the un-folded string is kept; the ASCII filter
	// below still produces a usable key.

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fold lower-cases and strips diacritics but keeps spacing and punctuation.
// The fuzzy matcher uses it where Key would be too destructive for
// similarity scoring.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}
