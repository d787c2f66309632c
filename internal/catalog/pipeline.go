package catalog

import (
	"fmt"
	"strings"

	"github.com/pders01/castdex/internal/storage"
)

// FilterState is the user-controlled input of the pipeline. An empty Topic
// means all topics.
type FilterState struct {
	Query string
	Topic string
	Sort  SortKey
}

// Recompute builds a fresh view from the full collection: text search, then
// topic intersection, then sort. The input slice is never modified.
func Recompute(episodes []storage.EpisodeSummary, topics []storage.Topic, f FilterState) []storage.EpisodeSummary {
	view := Search(episodes, f.Query)
	if f.Topic != "" {
		view = ByTopic(view, topics, f.Topic)
	}
	Sort(view, f.Sort)
	return view
}

// Stats is the result counter shown above the list.
type Stats struct {
	Shown int
	Total int
}

func (s Stats) String() string {
	if s.Shown == s.Total {
		return fmt.Sprintf("Showing all %d episodes", s.Total)
	}
	return fmt.Sprintf("Showing %d of %d episodes", s.Shown, s.Total)
}

// Describe summarises the active filter for status lines, e.g.
// `"rust" in Systems Programming, Most viewed`.
func (f FilterState) Describe(topics []storage.Topic) string {
	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	if f.Topic != "" {
		name := f.Topic
		if t, ok := FindTopic(topics, f.Topic); ok && t.DisplayName != "" {
			name = t.DisplayName
		}
		parts = append(parts, "in "+name)
	}
	desc := strings.Join(parts, " ")
	if desc == "" {
		return f.Sort.Label()
	}
	return desc + ", " + f.Sort.Label()
}
