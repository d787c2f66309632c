package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"keeps newline and tab", "a\n\tb", "a\n\tb"},
		{"drops color codes", "\x1b[31mred\x1b[0m text", "red text"},
		{"drops osc title", "\x1b]0;pwned\x07after", "after"},
		{"drops bell and nul", "a\x07b\x00c", "abc"},
		{"drops carriage return", "line\r\nnext", "line\nnext"},
		{"keeps unicode", "Émile Ørsted 日本", "Émile Ørsted 日本"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestInline(t *testing.T) {
	assert.Equal(t, "a b c", Inline("  a\n b\t\tc  "))
	assert.Equal(t, "", Inline("\x1b[1m\x1b[0m"))
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<script>alert(1)</script>", `\<script\>alert\(1\)\</script\>`},
		{"**bold**", `\*\*bold\*\*`},
		{"[link](http://x)", `\[link\]\(http\://x\)`},
		{"# heading", `\# heading`},
		{"a_b", `a\_b`},
		{"back\\slash", `back\\slash`},
		{"plain words", "plain words"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeMarkdown(tt.input), tt.input)
	}
}

func TestTruncateEnd(t *testing.T) {
	assert.Equal(t, "", TruncateEnd("hello", 0))
	assert.Equal(t, "hello", TruncateEnd("hello", 5))
	assert.Equal(t, "hell…", TruncateEnd("hello world", 5))
	assert.Equal(t, "…", TruncateEnd("hello", 1))
}
