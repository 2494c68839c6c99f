package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name unchanged", "simple", "simple"},
		{"dots preserved", "parent.child", "parent.child"},
		{"underscore and hyphen preserved", "a_b-c", "a_b-c"},
		{"path separators removed", "file/with\\separators", "filewithseparators"},
		{"reserved characters removed", "file:with*chars?\"<>|", "filewithchars"},
		{"spaces removed", "two words", "twowords"},
		{"mixed special input", "file/with\\special:chars*", "filewithspecialchars"},
		{"unicode letters kept", "données.été", "données.été"},
		{"digits kept", "report2024", "report2024"},
		{"all invalid reduces to empty", "/\\:*?\"<>| ", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestSanitizeName_NeverEmitsReservedCharacters(t *testing.T) {
	inputs := []string{
		"a/b", "a\\b", "a:b", "a*b", "a?b", `a"b`, "a<b", "a>b", "a|b",
		"..\\..\\escape", "../../escape",
	}

	for _, input := range inputs {
		got := SanitizeName(input)
		assert.NotContains(t, got, "/", "input %q", input)
		assert.NotContains(t, got, "\\", "input %q", input)
		assert.NotContains(t, got, ":", "input %q", input)
		assert.NotContains(t, got, "*", "input %q", input)
		assert.NotContains(t, got, "?", "input %q", input)
		assert.NotContains(t, got, `"`, "input %q", input)
		assert.NotContains(t, got, "<", "input %q", input)
		assert.NotContains(t, got, ">", "input %q", input)
		assert.NotContains(t, got, "|", "input %q", input)
	}
}

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain segment", "child", "child"},
		{"special characters stripped", "chi:ld*", "child"},
		{"empty segment stays empty", "", ""},
		{"all invalid reduces to empty", "//", ""},
		{"parent directory reference dropped", "..", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeSegment(tt.input))
		})
	}
}
