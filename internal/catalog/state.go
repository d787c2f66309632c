package catalog

import "github.com/pders01/castdex/internal/storage"

// State owns the loaded collections and the current view. It is not safe for
// concurrent use; the UI event loop is its only owner.
type State struct {
	episodes []storage.EpisodeSummary
	topics   []storage.Topic
	bySlug   map[string]int
	filter   FilterState
	view     []storage.EpisodeSummary
}

// NewState takes ownership of the collections. The initial view is the full
// set in feed order with the default sort key selected but not yet applied,
// matching what a fresh page shows before any interaction.
func NewState(episodes []storage.EpisodeSummary, topics []storage.Topic) *State {
	bySlug := make(map[string]int, len(episodes))
	for i, ep := range episodes {
		if _, dup := bySlug[ep.Slug]; !dup {
			bySlug[ep.Slug] = i
		}
	}
	view := make([]storage.EpisodeSummary, len(episodes))
	copy(view, episodes)
	return &State{
		episodes: episodes,
		topics:   topics,
		bySlug:   bySlug,
		filter:   FilterState{Sort: DefaultSort},
		view:     view,
	}
}

// Apply replaces the whole filter and recomputes the view.
func (s *State) Apply(f FilterState) []storage.EpisodeSummary {
	s.filter = f
	s.view = Recompute(s.episodes, s.topics, f)
	return s.view
}

func (s *State) SetQuery(q string) []storage.EpisodeSummary {
	f := s.filter
	f.Query = q
	return s.Apply(f)
}

// SetTopic selects a topic by name; "" clears the topic filter.
func (s *State) SetTopic(name string) []storage.EpisodeSummary {
	f := s.filter
	f.Topic = name
	return s.Apply(f)
}

func (s *State) SetSort(k SortKey) []storage.EpisodeSummary {
	f := s.filter
	f.Sort = k
	return s.Apply(f)
}

func (s *State) View() []storage.EpisodeSummary { return s.view }

func (s *State) Filter() FilterState { return s.filter }

func (s *State) Topics() []storage.Topic { return s.topics }

func (s *State) Episodes() []storage.EpisodeSummary { return s.episodes }

func (s *State) Stats() Stats {
	return Stats{Shown: len(s.view), Total: len(s.episodes)}
}

// Episode looks a summary up by slug in the full collection.
func (s *State) Episode(slug string) (storage.EpisodeSummary, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return storage.EpisodeSummary{}, false
	}
	return s.episodes[i], true
}
