package feed

import (
	"context"
	"fmt"

	"github.com/pders01/castdex/internal/config"
	"github.com/pders01/castdex/internal/storage"
	"github.com/pders01/castdex/internal/validation"
)

// Source provides the catalog at startup and the full episode records on
// demand.
type Source interface {
	LoadCatalog(ctx context.Context) (*storage.Catalog, error)
	LoadDetails(ctx context.Context) ([]storage.EpisodeDetail, error)
	Close() error
}

var (
	_ Source = (*Manager)(nil)
	_ Source = (*storage.Store)(nil)
)

// OpenSource picks the snapshot store when feeds.snapshot is set, or when
// the index location is itself a bolt:// URL, and the JSON feeds otherwise.
// Snapshots are opened read-only and must already exist.
func OpenSource(cfg *config.Config) (Source, error) {
	snapshot := cfg.Feeds.Snapshot
	if snapshot == "" {
		if src, err := validation.ParseSource(cfg.Feeds.Index); err == nil && src.Kind == validation.SourceBolt {
			snapshot = cfg.Feeds.Index
		}
	}
	if snapshot == "" {
		return NewManager(cfg), nil
	}

	path := snapshot
	if src, err := validation.ParseSource(snapshot); err == nil && src.Kind == validation.SourceBolt {
		path = src.Target
	} else if expanded, err := validation.ExpandPath(snapshot); err == nil {
		path = expanded
	}

	store, err := storage.OpenStore(path)
	if err != nil {
		return nil, &storage.LoadError{Stage: storage.StageInit, Feed: "snapshot", Err: fmt.Errorf("opening %s: %w", path, err)}
	}
	return store, nil
}
