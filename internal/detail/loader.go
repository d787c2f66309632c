// Package detail lazily loads the full episode feed and serves single
// episodes from it.
package detail

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/pders01/castdex/internal/debuglog"
	"github.com/pders01/castdex/internal/storage"
)

// ErrNotFound is returned for a slug missing from the full feed.
var ErrNotFound = errors.New("episode not found")

// State is the lifecycle of the cached feed.
type State int

const (
	Unloaded State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchFunc retrieves the full episode feed.
type FetchFunc func(ctx context.Context) ([]storage.EpisodeDetail, error)

// Loader fetches the full feed at most once per successful load. Concurrent
// Get calls share one in-flight fetch; a failed fetch leaves the cache empty
// so the next Get retries.
type Loader struct {
	fetch FetchFunc
	group singleflight.Group

	mu      sync.RWMutex
	state   State
	bySlug  map[string]storage.EpisodeDetail
	lastErr error
	fetches int
}

func NewLoader(fetch FetchFunc) *Loader {
	return &Loader{fetch: fetch}
}

// Get returns the full record for slug, fetching the feed first if needed.
func (l *Loader) Get(ctx context.Context, slug string) (storage.EpisodeDetail, error) {
	if err := l.ensure(ctx); err != nil {
		return storage.EpisodeDetail{}, err
	}

	l.mu.RLock()
	d, ok := l.bySlug[slug]
	l.mu.RUnlock()
	if !ok {
		return storage.EpisodeDetail{}, fmt.Errorf("%s: %w", slug, ErrNotFound)
	}
	return d, nil
}

func (l *Loader) ensure(ctx context.Context) error {
	l.mu.RLock()
	loaded := l.state == Loaded
	l.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := l.group.Do("details", func() (any, error) {
		l.mu.Lock()
		if l.state == Loaded {
			l.mu.Unlock()
			return nil, nil
		}
		l.state = Loading
		l.fetches++
		l.mu.Unlock()

		debuglog.Infof("fetching full episode feed")
		details, err := l.fetch(ctx)

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			var loadErr *storage.LoadError
			if !errors.As(err, &loadErr) {
				err = &storage.LoadError{Stage: storage.StageDetail, Feed: "episodes", Err: err}
			}
			l.state = Failed
			l.lastErr = err
			debuglog.Warnf("full episode feed failed: %v", err)
			return nil, err
		}

		// Built off to the side and swapped in whole.
		index := make(map[string]storage.EpisodeDetail, len(details))
		for _, d := range details {
			if _, dup := index[d.Slug]; !dup {
				index[d.Slug] = d
			}
		}
		l.bySlug = index
		l.state = Loaded
		l.lastErr = nil
		debuglog.Infof("cached %d episode details", len(index))
		return nil, nil
	})
	return err
}

func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Fetches counts how many times the feed was requested.
func (l *Loader) Fetches() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fetches
}

// Err returns the error of the last failed fetch, nil once loaded.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// Len is the number of cached records.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.bySlug)
}
