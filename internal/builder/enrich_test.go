package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/castdex/internal/feed"
	"github.com/pders01/castdex/internal/storage"
)

func TestVideoID(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=abc123":   "abc123",
		"https://youtube.com/watch?v=abc123&t=10s": "abc123",
		"https://m.youtube.com/watch?v=abc123":     "abc123",
		"https://youtu.be/abc123":                  "abc123",
		"https://www.youtube.com/shorts/abc123":    "abc123",
		"https://vimeo.com/12345":                  "",
		"":                                         "",
		"not a url":                                "",
	}
	for link, want := range tests {
		assert.Equal(t, want, videoID(link), link)
	}
}

func TestEnrich_FillsOnlyEmptyFields(t *testing.T) {
	episodes := []storage.EpisodeDetail{
		{EpisodeSummary: storage.EpisodeSummary{Slug: "a", Title: "Kept title", YouTubeURL: "https://www.youtube.com/watch?v=aaa"}},
		{EpisodeSummary: storage.EpisodeSummary{Slug: "b", YouTubeURL: "https://youtu.be/bbb"}},
		{EpisodeSummary: storage.EpisodeSummary{Slug: "c"}},
	}
	items := []feed.Enrichment{
		{Link: "https://www.youtube.com/watch?v=aaa", Title: "Feed title A", Description: "Desc A", Published: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		{VideoID: "bbb", Title: "Feed title B"},
	}

	changed := enrich(episodes, items)

	assert.Equal(t, 2, changed)
	assert.Equal(t, "Kept title", episodes[0].Title)
	assert.Equal(t, "Desc A", episodes[0].Description)
	assert.Equal(t, "2024-02-03", episodes[0].PublishDate)
	assert.Equal(t, "Feed title B", episodes[1].Title)
	assert.Empty(t, episodes[2].Title)
}
