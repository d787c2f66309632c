package detail

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/castdex/internal/storage"
)

func details() []storage.EpisodeDetail {
	return []storage.EpisodeDetail{
		{EpisodeSummary: storage.EpisodeSummary{Slug: "a", Title: "Intro to Go"}, Transcript: "go go go"},
		{EpisodeSummary: storage.EpisodeSummary{Slug: "b", Title: "Rust Deep Dive"}, Transcript: "borrow checker"},
	}
}

func TestLoader_FetchesOnce(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(func(context.Context) ([]storage.EpisodeDetail, error) {
		calls.Add(1)
		return details(), nil
	})

	assert.Equal(t, Unloaded, l.State())

	a, err := l.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "go go go", a.Transcript)

	b, err := l.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "borrow checker", b.Transcript)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, l.Fetches())
	assert.Equal(t, Loaded, l.State())
	assert.Equal(t, 2, l.Len())
}

func TestLoader_NotFoundDoesNotRefetch(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(func(context.Context) ([]storage.EpisodeDetail, error) {
		calls.Add(1)
		return details(), nil
	})

	_, err := l.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Get(context.Background(), "also-missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, int32(1), calls.Load())
}

func TestLoader_FailureAllowsRetry(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("connection refused")
	l := NewLoader(func(context.Context) ([]storage.EpisodeDetail, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return details(), nil
	})

	_, err := l.Get(context.Background(), "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var loadErr *storage.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, storage.StageDetail, loadErr.Stage)
	assert.Equal(t, Failed, l.State())
	assert.Equal(t, 0, l.Len(), "cache stays empty after failure")
	assert.Equal(t, err, l.Err())

	d, err := l.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", d.Slug)
	assert.Equal(t, int32(2), calls.Load())
	assert.NoError(t, l.Err())
}

func TestLoader_KeepsExistingLoadError(t *testing.T) {
	orig := &storage.LoadError{Stage: storage.StageDetail, Feed: "custom", Err: errors.New("x")}
	l := NewLoader(func(context.Context) ([]storage.EpisodeDetail, error) {
		return nil, orig
	})

	_, err := l.Get(context.Background(), "a")
	var loadErr *storage.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "custom", loadErr.Feed)
}

func TestLoader_ConcurrentGetsShareFetch(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLoader(func(context.Context) ([]storage.EpisodeDetail, error) {
		calls.Add(1)
		<-release
		return details(), nil
	})

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slug := "a"
			if i%2 == 1 {
				slug = "b"
			}
			_, err := l.Get(context.Background(), slug)
			errs <- err
		}(i)
	}

	// Let the goroutines pile up on the in-flight fetch.
	require.Eventually(t, func() bool { return l.State() == Loading }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unloaded", Unloaded.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
}
