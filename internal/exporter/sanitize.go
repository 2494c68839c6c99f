package exporter

import (
	"strings"
	"unicode"
)

// SanitizeName reduces a raw dataset name to a filesystem-safe identifier.
// Characters outside the allow-list (letters, digits, dot, underscore,
// hyphen) are removed; path separators and reserved characters such as
// / \ : * ? " < > | never survive. The result may be empty.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if allowedRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeSegment sanitizes one dot-separated segment of a nested name.
// Segments come from splitting on '.', so no dot can survive here; the
// explicit guard keeps a '..' result from ever naming a parent directory.
func sanitizeSegment(segment string) string {
	s := SanitizeName(segment)
	if s == ".." || strings.Trim(s, ".") == "" {
		return ""
	}
	return s
}

func allowedRune(r rune) bool {
	switch r {
	case '.', '_', '-':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
