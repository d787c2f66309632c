package plugins

import (
	"context"
	"net/http"
	"time"
)

// FeedInfo describes where the enrichment feed for a source URL lives.
type FeedInfo struct {
	// OriginalURL is the URL the user passed on the command line.
	OriginalURL string
	// FeedURL is the RSS or Atom endpoint to fetch.
	FeedURL string
	// Title is a human label for build output, e.g. "YouTube - @creator".
	Title string
	// Metadata holds resolver specific values such as the channel id.
	Metadata map[string]string
}

// Plugin turns a host specific page URL into a feed URL.
type Plugin interface {
	Name() string

	// CanHandle reports whether the plugin knows the URL's host.
	CanHandle(url string) bool

	// ResolveFeed may fetch the page to discover the feed endpoint.
	ResolveFeed(ctx context.Context, url string, client *http.Client) (*FeedInfo, error)

	// Priority breaks ties when several plugins accept the same URL.
	Priority() int
}

// Registry picks a plugin for each source URL.
type Registry struct {
	plugins []Plugin
	client  *http.Client
}

func NewRegistry(timeout time.Duration) *Registry {
	return &Registry{
		plugins: make([]Plugin, 0),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Default returns a registry with the built-in resolvers.
func Default(timeout time.Duration) *Registry {
	r := NewRegistry(timeout)
	r.Register(NewYouTube())
	return r
}

func (r *Registry) Register(plugin Plugin) {
	r.plugins = append(r.plugins, plugin)
}

// FindPlugin returns the highest priority plugin that can handle url, or nil.
func (r *Registry) FindPlugin(url string) Plugin {
	var bestPlugin Plugin
	highestPriority := -1

	for _, plugin := range r.plugins {
		if plugin.CanHandle(url) && plugin.Priority() > highestPriority {
			bestPlugin = plugin
			highestPriority = plugin.Priority()
		}
	}

	return bestPlugin
}

// Resolve maps url to its feed. URLs no plugin claims are assumed to be
// feeds already.
func (r *Registry) Resolve(ctx context.Context, url string) (*FeedInfo, error) {
	plugin := r.FindPlugin(url)
	if plugin == nil {
		return &FeedInfo{
			OriginalURL: url,
			FeedURL:     url,
			Metadata:    make(map[string]string),
		}, nil
	}

	return plugin.ResolveFeed(ctx, url, r.client)
}

func (r *Registry) ListPlugins() []Plugin {
	return append([]Plugin(nil), r.plugins...)
}
