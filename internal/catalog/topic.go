package catalog

import "github.com/pders01/castdex/internal/storage"

// TopicSlugs resolves the membership set of the named topic. An unknown name
// yields an empty set.
func TopicSlugs(topics []storage.Topic, name string) map[string]struct{} {
	for _, t := range topics {
		if t.Name != name {
			continue
		}
		slugs := make(map[string]struct{}, len(t.Episodes))
		for _, ref := range t.Episodes {
			slugs[ref.Slug] = struct{}{}
		}
		return slugs
	}
	return map[string]struct{}{}
}

// ByTopic keeps the episodes that belong to the named topic. Membership
// references to episodes that do not exist simply match nothing.
func ByTopic(episodes []storage.EpisodeSummary, topics []storage.Topic, name string) []storage.EpisodeSummary {
	slugs := TopicSlugs(topics, name)
	result := make([]storage.EpisodeSummary, 0, len(slugs))
	for _, ep := range episodes {
		if _, ok := slugs[ep.Slug]; ok {
			result = append(result, ep)
		}
	}
	return result
}

// FindTopic looks a topic up by name.
func FindTopic(topics []storage.Topic, name string) (storage.Topic, bool) {
	for _, t := range topics {
		if t.Name == name {
			return t, true
		}
	}
	return storage.Topic{}, false
}
