package builder

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	errNoFrontmatter    = errors.New("no frontmatter")
	errEmptyFrontmatter = errors.New("empty frontmatter")
)

// frontmatter is the metadata block at the top of a transcript file.
type frontmatter struct {
	Guest           string   `yaml:"guest" toml:"guest"`
	Title           string   `yaml:"title" toml:"title"`
	YouTubeURL      string   `yaml:"youtube_url" toml:"youtube_url"`
	VideoID         string   `yaml:"video_id" toml:"video_id"`
	PublishDate     any      `yaml:"publish_date" toml:"publish_date"`
	Description     string   `yaml:"description" toml:"description"`
	DurationSeconds int      `yaml:"duration_seconds" toml:"duration_seconds"`
	Duration        string   `yaml:"duration" toml:"duration"`
	ViewCount       int      `yaml:"view_count" toml:"view_count"`
	Channel         string   `yaml:"channel" toml:"channel"`
	Keywords        []string `yaml:"keywords" toml:"keywords"`
}

// parseTranscript splits a transcript file into its metadata and body.
// A "---" fence holds YAML and a "+++" fence holds TOML.
func parseTranscript(content []byte) (*frontmatter, string, error) {
	text := strings.ReplaceAll(string(bytes.TrimPrefix(content, []byte("\ufeff"))), "\r\n", "\n")

	lines := strings.Split(text, "\n")
	fence := strings.TrimRight(lines[0], " \t")
	if fence != "---" && fence != "+++" {
		return nil, "", errNoFrontmatter
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == fence {
			closing = i
			break
		}
	}
	if closing < 0 {
		return nil, "", fmt.Errorf("unterminated %s frontmatter", fence)
	}
	raw := strings.Join(lines[1:closing], "\n")
	body := strings.Join(lines[closing+1:], "\n")

	unmarshal, format := yaml.Unmarshal, "YAML"
	if fence == "+++" {
		unmarshal, format = toml.Unmarshal, "TOML"
	}

	// A block without keys is treated like a missing one.
	var keys map[string]any
	if err := unmarshal([]byte(raw), &keys); err != nil {
		return nil, "", fmt.Errorf("parsing %s frontmatter: %w", format, err)
	}
	if len(keys) == 0 {
		return nil, "", errEmptyFrontmatter
	}

	var fm frontmatter
	if err := unmarshal([]byte(raw), &fm); err != nil {
		return nil, "", fmt.Errorf("parsing %s frontmatter: %w", format, err)
	}
	return &fm, strings.TrimSpace(body), nil
}

// dateString renders a frontmatter date the way it was written: plain
// dates as YYYY-MM-DD, timestamps as RFC 3339.
func dateString(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(d)
	case time.Time:
		if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
			return d.Format("2006-01-02")
		}
		return d.Format(time.RFC3339)
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprint(d)
	}
}
