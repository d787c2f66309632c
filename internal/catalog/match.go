// Package catalog holds the episode query pipeline: text matching, topic
// filtering and sorting over an in-memory collection, plus the State that
// owns the current view.
package catalog

import (
	"strings"

	"github.com/pders01/castdex/internal/storage"
)

// normalizeQuery trims and case-folds a raw query.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether ep matches query. Guest, title and description are
// substring matches; a keyword matches when the query is contained in it.
// An empty or whitespace query matches everything.
func Matches(ep storage.EpisodeSummary, query string) bool {
	q := normalizeQuery(query)
	if q == "" {
		return true
	}
	return matchNormalized(ep, q)
}

func matchNormalized(ep storage.EpisodeSummary, q string) bool {
	if strings.Contains(strings.ToLower(ep.Guest), q) ||
		strings.Contains(strings.ToLower(ep.Title), q) ||
		strings.Contains(strings.ToLower(ep.Description), q) {
		return true
	}
	for _, k := range ep.Keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}

// Search keeps the episodes matching query, in their original order.
func Search(episodes []storage.EpisodeSummary, query string) []storage.EpisodeSummary {
	q := normalizeQuery(query)
	result := make([]storage.EpisodeSummary, 0, len(episodes))
	if q == "" {
		return append(result, episodes...)
	}
	for _, ep := range episodes {
		if matchNormalized(ep, q) {
			result = append(result, ep)
		}
	}
	return result
}
