package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTranscript_YAML(t *testing.T) {
	content := "---\n" +
		"guest: Ada Lovelace\n" +
		"title: \"Notes: on the engine\"\n" +
		"publish_date: 2024-01-15\n" +
		"duration: \"1:02:03\"\n" +
		"duration_seconds: 3723\n" +
		"view_count: 1200\n" +
		"keywords:\n  - math\n  - engines\n" +
		"youtube_url: https://www.youtube.com/watch?v=abc\n" +
		"---\n\n" +
		"Transcript body.\n\nSecond paragraph.\n\n"

	fm, body, err := parseTranscript([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", fm.Guest)
	assert.Equal(t, "Notes: on the engine", fm.Title)
	assert.Equal(t, "2024-01-15", dateString(fm.PublishDate))
	assert.Equal(t, 3723, fm.DurationSeconds)
	assert.Equal(t, 1200, fm.ViewCount)
	assert.Equal(t, []string{"math", "engines"}, fm.Keywords)
	assert.Equal(t, "Transcript body.\n\nSecond paragraph.", body)
}

func TestParseTranscript_TOML(t *testing.T) {
	content := "+++\n" +
		"guest = \"Grace Hopper\"\n" +
		"title = \"Compilers\"\n" +
		"publish_date = 2023-05-06\n" +
		"view_count = 42\n" +
		"keywords = [\"cobol\"]\n" +
		"+++\n" +
		"Body\n"

	fm, body, err := parseTranscript([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", fm.Guest)
	assert.Equal(t, "2023-05-06", dateString(fm.PublishDate))
	assert.Equal(t, 42, fm.ViewCount)
	assert.Equal(t, []string{"cobol"}, fm.Keywords)
	assert.Equal(t, "Body", body)
}

func TestParseTranscript_CRLF(t *testing.T) {
	fm, body, err := parseTranscript([]byte("---\r\nguest: X\r\n---\r\nline one\r\nline two\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "X", fm.Guest)
	assert.Equal(t, "line one\nline two", body)
}

func TestParseTranscript_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no frontmatter", "# Just a heading\n\ntext"},
		{"empty file", ""},
		{"unterminated", "---\nguest: X\nbody without fence"},
		{"invalid yaml", "---\nguest: [unclosed\n---\nbody"},
		{"invalid toml", "+++\nguest = \n+++\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseTranscript([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseTranscript_EmptyBlockIsSkipped(t *testing.T) {
	for _, content := range []string{"---\n---\nbody", "---\n\n---\nbody", "+++\n+++\nbody", "---\n~\n---\nbody"} {
		_, _, err := parseTranscript([]byte(content))
		assert.ErrorIs(t, err, errEmptyFrontmatter, "%q", content)
	}
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "", dateString(nil))
	assert.Equal(t, "2024-01-02", dateString(" 2024-01-02 "))
	assert.Equal(t, "2024-01-02", dateString(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-02T03:04:05Z", dateString(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Equal(t, "20240102", dateString(20240102))
}
