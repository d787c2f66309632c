// Package render turns catalog records into terminal text and markdown.
// Nothing here performs I/O, and every field taken from a feed is treated
// as untrusted text.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize removes terminal escape sequences and control characters from
// s. Newlines and tabs survive; carriage returns are dropped.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Inline sanitizes s and folds it onto a single line.
func Inline(s string) string {
	return strings.Join(strings.Fields(Sanitize(s)), " ")
}

const markdownSpecial = "\\`*_{}[]()<>#+-.!|~&\"'=:"

// EscapeMarkdown backslash-escapes every CommonMark punctuation character
// that can start or end markup, so the result renders as literal text.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(markdownSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Text is Sanitize followed by EscapeMarkdown.
func Text(s string) string {
	return EscapeMarkdown(Sanitize(s))
}

// TruncateEnd shortens s to limit cells, ending with an ellipsis when
// something was cut.
func TruncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return ansi.Truncate(s, limit, "…")
}
