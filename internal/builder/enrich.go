package builder

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pders01/castdex/internal/feed"
	"github.com/pders01/castdex/internal/storage"
)

func loadEnrichment(ctx context.Context, fetcher *feed.Fetcher, location string) ([]feed.Enrichment, error) {
	body, err := fetcher.Open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("opening RSS feed: %w", err)
	}
	defer body.Close()

	items, err := feed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("reading RSS feed: %w", err)
	}
	return items, nil
}

// enrich fills empty title, description and publish date fields from feed
// items that refer to the same video. It returns how many episodes changed.
func enrich(episodes []storage.EpisodeDetail, items []feed.Enrichment) int {
	byVideo := make(map[string]feed.Enrichment, len(items))
	for _, it := range items {
		if id := it.VideoID; id != "" {
			byVideo[id] = it
		}
		if id := videoID(it.Link); id != "" {
			if _, ok := byVideo[id]; !ok {
				byVideo[id] = it
			}
		}
	}

	changed := 0
	for i := range episodes {
		ep := &episodes[i]
		id := ep.VideoID
		if id == "" {
			id = videoID(ep.YouTubeURL)
		}
		it, ok := byVideo[id]
		if id == "" || !ok {
			continue
		}

		touched := false
		if strings.TrimSpace(ep.Title) == "" && it.Title != "" {
			ep.Title = it.Title
			touched = true
		}
		if strings.TrimSpace(ep.Description) == "" && it.Description != "" {
			ep.Description = it.Description
			touched = true
		}
		if strings.TrimSpace(ep.PublishDate) == "" && !it.Published.IsZero() {
			ep.PublishDate = it.Published.Format("2006-01-02")
			touched = true
		}
		if touched {
			changed++
		}
	}
	return changed
}

// videoID extracts the id from youtube.com/watch?v=, youtu.be/ and
// youtube.com/shorts/ links.
func videoID(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	case "youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/shorts/"); ok {
			return strings.Trim(rest, "/")
		}
	}
	return ""
}
