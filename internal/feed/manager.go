package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pders01/castdex/internal/config"
	"github.com/pders01/castdex/internal/debuglog"
	"github.com/pders01/castdex/internal/storage"
)

// Feed names used in LoadError.
const (
	FeedIndex    = "index"
	FeedTopics   = "topics"
	FeedEpisodes = "episodes"
)

// Manager loads the JSON catalog feeds.
type Manager struct {
	fetcher *Fetcher
	feeds   config.FeedsConfig
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		fetcher: NewFetcher(cfg),
		feeds:   cfg.Feeds,
	}
}

// LoadCatalog fetches the index and topic feeds concurrently. Both must
// succeed; the first failure cancels the other fetch.
func (m *Manager) LoadCatalog(ctx context.Context) (*storage.Catalog, error) {
	var (
		episodes []storage.EpisodeSummary
		topics   []storage.Topic
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.decode(gctx, storage.StageInit, FeedIndex, m.feeds.Index, &episodes)
	})
	g.Go(func() error {
		return m.decode(gctx, storage.StageInit, FeedTopics, m.feeds.Topics, &topics)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	debuglog.WithFields(map[string]any{
		"episodes": len(episodes),
		"topics":   len(topics),
	}).Infof("catalog loaded")

	return &storage.Catalog{Episodes: episodes, Topics: topics}, nil
}

// LoadDetails fetches the full episode feed, transcripts included.
func (m *Manager) LoadDetails(ctx context.Context) ([]storage.EpisodeDetail, error) {
	var details []storage.EpisodeDetail
	if err := m.decode(ctx, storage.StageDetail, FeedEpisodes, m.feeds.Episodes, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// Close satisfies Source; a Manager holds no resources.
func (m *Manager) Close() error {
	return nil
}

func (m *Manager) decode(ctx context.Context, stage storage.Stage, name, location string, out any) error {
	debuglog.Debugf("fetching %s feed from %s", name, location)

	body, err := m.fetcher.Open(ctx, location)
	if err != nil {
		return &storage.LoadError{Stage: stage, Feed: name, Err: err}
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &storage.LoadError{Stage: stage, Feed: name, Err: fmt.Errorf("decoding JSON: %w", err)}
	}
	return nil
}
