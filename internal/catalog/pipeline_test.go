package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/castdex/internal/storage"
)

func fixtureTopics() []storage.Topic {
	return []storage.Topic{
		{
			Name: "leadership", DisplayName: "Leadership", Count: 3,
			Episodes: []storage.TopicEpisode{{Slug: "alice-smith"}, {Slug: "dan-ortiz"}, {Slug: "ghost-episode"}},
		},
		{
			Name: "pricing", DisplayName: "Pricing", Count: 1,
			Episodes: []storage.TopicEpisode{{Slug: "bob-jones"}},
		},
	}
}

func TestRecompute_UnknownTopicIsEmpty(t *testing.T) {
	view := Recompute(fixtureEpisodes(), fixtureTopics(), FilterState{Topic: "none-existing", Sort: SortDateDesc})
	assert.NotNil(t, view)
	assert.Empty(t, view)
}

func TestRecompute_DanglingTopicReferencesIgnored(t *testing.T) {
	view := Recompute(fixtureEpisodes(), fixtureTopics(), FilterState{Topic: "leadership"})
	assert.Equal(t, []string{"alice-smith", "dan-ortiz"}, slugs(view))
}

func TestRecompute_SearchAndTopicCommute(t *testing.T) {
	eps := fixtureEpisodes()
	topics := fixtureTopics()

	for _, q := range []string{"", "o", "pm", "pricing", "rust"} {
		for _, topic := range []string{"leadership", "pricing", "missing"} {
			pipeline := Recompute(eps, topics, FilterState{Query: q, Topic: topic, Sort: SortGuestAsc})

			reversed := Search(ByTopic(eps, topics, topic), q)
			Sort(reversed, SortGuestAsc)

			assert.Equal(t, slugs(pipeline), slugs(reversed), "query %q topic %q", q, topic)
		}
	}
}

func TestRecompute_DoesNotMutateInput(t *testing.T) {
	eps := fixtureEpisodes()
	before := slugs(eps)
	_ = Recompute(eps, nil, FilterState{Sort: SortViewsDesc})
	assert.Equal(t, before, slugs(eps))
}

func TestRecompute_EndToEnd(t *testing.T) {
	eps := []storage.EpisodeSummary{
		{Slug: "a", Guest: "X", Title: "Intro to Go", ViewCount: 10, PublishDate: "2024-01-01"},
		{Slug: "b", Guest: "Y", Title: "Rust Deep Dive", ViewCount: 50, PublishDate: "2023-01-01"},
	}

	assert.Equal(t, []string{"b"}, slugs(Recompute(eps, nil, FilterState{Query: "rust"})))
	assert.Equal(t, []string{"b", "a"}, slugs(Recompute(eps, nil, FilterState{Sort: SortViewsDesc})))
	assert.Empty(t, Recompute(eps, nil, FilterState{Topic: "none-existing"}))
}

func TestStats_String(t *testing.T) {
	assert.Equal(t, "Showing all 4 episodes", Stats{Shown: 4, Total: 4}.String())
	assert.Equal(t, "Showing 1 of 4 episodes", Stats{Shown: 1, Total: 4}.String())
	assert.Equal(t, "Showing all 0 episodes", Stats{}.String())
}

func TestFilterState_Describe(t *testing.T) {
	topics := fixtureTopics()
	assert.Equal(t, "Newest first", FilterState{Sort: SortDateDesc}.Describe(topics))
	assert.Equal(t, `"rust" in Pricing, Most viewed`, FilterState{Query: " rust ", Topic: "pricing", Sort: SortViewsDesc}.Describe(topics))
	assert.Equal(t, "in missing, Unsorted", FilterState{Topic: "missing"}.Describe(topics))
}
