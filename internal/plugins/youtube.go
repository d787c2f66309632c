package plugins

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const youtubeFeedBase = "https://www.youtube.com/feeds/videos.xml"

// YouTube resolves channel, handle and playlist pages to their Atom feeds.
type YouTube struct{}

func NewYouTube() *YouTube { return &YouTube{} }

func (p *YouTube) Name() string { return "youtube" }

func (p *YouTube) Priority() int { return 100 }

func (p *YouTube) CanHandle(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Hostname()) {
	case "youtube.com", "www.youtube.com", "m.youtube.com":
		return true
	}
	return false
}

func (p *YouTube) ResolveFeed(ctx context.Context, raw string, client *http.Client) (*FeedInfo, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", raw, err)
	}

	info := &FeedInfo{OriginalURL: raw, Metadata: make(map[string]string)}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case strings.HasPrefix(u.Path, "/feeds/"):
		info.FeedURL = raw
		info.Title = "YouTube"
		return info, nil

	case segments[0] == "channel" && len(segments) > 1 && segments[1] != "":
		return channelFeed(info, segments[1], "YouTube channel "+segments[1]), nil

	case segments[0] == "playlist":
		list := u.Query().Get("list")
		if list == "" {
			return nil, fmt.Errorf("playlist URL %s has no list parameter", raw)
		}
		info.FeedURL = youtubeFeedBase + "?playlist_id=" + url.QueryEscape(list)
		info.Title = "YouTube playlist " + list
		info.Metadata["playlist_id"] = list
		return info, nil

	case strings.HasPrefix(segments[0], "@"), segments[0] == "c", segments[0] == "user":
		return p.discover(ctx, info, raw, client)
	}

	return nil, fmt.Errorf("cannot find a feed for %s", raw)
}

func channelFeed(info *FeedInfo, id, title string) *FeedInfo {
	info.FeedURL = youtubeFeedBase + "?channel_id=" + url.QueryEscape(id)
	info.Title = title
	info.Metadata["channel_id"] = id
	return info
}

// discover fetches a handle or custom URL page and reads the feed link
// the page advertises.
func (p *YouTube) discover(ctx context.Context, info *FeedInfo, raw string, client *http.Client) (*FeedInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", raw, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP error: %d", raw, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", raw, err)
	}

	title := "YouTube"
	if name := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", "")); name != "" {
		title = "YouTube - " + name
	}

	if href, ok := doc.Find(`link[rel="alternate"][type="application/rss+xml"]`).First().Attr("href"); ok && href != "" {
		info.FeedURL = href
		info.Title = title
		if feedURL, err := url.Parse(href); err == nil {
			if id := feedURL.Query().Get("channel_id"); id != "" {
				info.Metadata["channel_id"] = id
			}
		}
		return info, nil
	}

	if id := doc.Find(`meta[itemprop="channelId"]`).AttrOr("content", ""); id != "" {
		return channelFeed(info, id, title), nil
	}

	return nil, fmt.Errorf("no feed advertised on %s", raw)
}
