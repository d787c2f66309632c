package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/castdex/internal/storage"
)

func fixtureDetails() []storage.EpisodeDetail {
	return []storage.EpisodeDetail{
		{
			EpisodeSummary: storage.EpisodeSummary{
				Slug: "alice", Guest: "Alice Smith", Title: "Pricing your product",
				Description: "How to set prices", Keywords: []string{"pricing", "saas"},
			},
			Transcript: "We talked about value based pricing for a long time and then moved on to hiring.",
		},
		{
			EpisodeSummary: storage.EpisodeSummary{
				Slug: "bob", Guest: "Bob Jones", Title: "Hiring engineers",
				Description: "Building teams", Keywords: []string{"hiring"},
			},
			Transcript: "Hiring is hard. Pricing came up once near the end.",
		},
		{
			EpisodeSummary: storage.EpisodeSummary{
				Slug: "carol", Guest: "Carol Ng", Title: "Onboarding",
				Description: "First week", Keywords: []string{"growth"},
			},
			Transcript: "Nothing about the other topics here.",
		},
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"value", "based", "pricing"}, tokenize("Value-based PRICING!"))
	assert.Equal(t, []string{"émile"}, tokenize("a Émile"))
	assert.Empty(t, tokenize("a b c"))
}

func TestEngine_Search_RanksTitleAboveTranscript(t *testing.T) {
	eng := NewEngine(fixtureDetails())

	res, err := eng.Search("pricing", 10)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "alice", res[0].Slug)
	assert.Equal(t, "bob", res[1].Slug)
	assert.Greater(t, res[0].Score, res[1].Score)
	assert.Contains(t, strings.ToLower(res[1].Snippet), "pricing")
}

func TestEngine_Search_ShortQuery(t *testing.T) {
	eng := NewEngine(fixtureDetails())

	for _, q := range []string{"", " ", "p"} {
		res, err := eng.Search(q, 10)
		require.NoError(t, err)
		assert.Empty(t, res, "query %q", q)
	}
}

func TestEngine_Search_Limit(t *testing.T) {
	res, err := NewEngine(fixtureDetails()).Search("the", 1)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestFindBestSnippet(t *testing.T) {
	words := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		words = append(words, "filler")
	}
	words[70] = "needle"
	text := strings.Join(words, " ")

	snippet := findBestSnippet(text, []string{"needle"}, 80)
	assert.Contains(t, snippet, "needle")
	assert.LessOrEqual(t, len([]rune(snippet)), 80)

	assert.Empty(t, findBestSnippet(text, []string{"absent"}, 80))
	assert.Equal(t, "short text", findBestSnippet("short text", []string{"short"}, 80))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "éé…", truncate("éééé", 3))
}
