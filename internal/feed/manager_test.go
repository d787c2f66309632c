package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/castdex/internal/config"
	"github.com/pders01/castdex/internal/storage"
)

const (
	indexJSON = `[
  {"slug":"alice","guest":"Alice","title":"Pricing","description":"d","keywords":["pricing"],"publish_date":"2024-01-02","duration":"1:00:00","duration_seconds":3600,"view_count":10},
  {"slug":"bob","guest":"Bob","title":"Growth","description":"d","keywords":[],"publish_date":"2023-05-06","duration":"45:00","duration_seconds":2700,"view_count":0}
]`
	topicsJSON = `[
  {"name":"pricing","display_name":"Pricing","count":1,"episodes":[{"slug":"alice","guest":"Alice"}]}
]`
	episodesJSON = `[
  {"slug":"alice","guest":"Alice","title":"Pricing","transcript":"Hello","youtube_url":"https://www.youtube.com/watch?v=a"},
  {"slug":"bob","guest":"Bob","title":"Growth","transcript":"Bye"}
]`
)

func feedServer(t *testing.T, routes map[string]string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func managerFor(server *httptest.Server) *Manager {
	cfg := config.TestConfig()
	cfg.Feeds.Index = server.URL + "/data/episodes-index.json"
	cfg.Feeds.Topics = server.URL + "/data/topics.json"
	cfg.Feeds.Episodes = server.URL + "/data/episodes.json"
	return NewManager(cfg)
}

func TestManager_LoadCatalog(t *testing.T) {
	var hits int32
	server := feedServer(t, map[string]string{
		"/data/episodes-index.json": indexJSON,
		"/data/topics.json":         topicsJSON,
	}, &hits)

	cat, err := managerFor(server).LoadCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, cat.Episodes, 2)
	assert.Equal(t, "alice", cat.Episodes[0].Slug)
	assert.Equal(t, 3600, cat.Episodes[0].DurationSeconds)
	require.Len(t, cat.Topics, 1)
	assert.Equal(t, "Pricing", cat.Topics[0].DisplayName)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestManager_LoadCatalog_FailsWhenEitherFeedFails(t *testing.T) {
	tests := []struct {
		name     string
		routes   map[string]string
		wantFeed string
	}{
		{
			name:     "topics missing",
			routes:   map[string]string{"/data/episodes-index.json": indexJSON},
			wantFeed: FeedTopics,
		},
		{
			name:     "index missing",
			routes:   map[string]string{"/data/topics.json": topicsJSON},
			wantFeed: FeedIndex,
		},
		{
			name: "index malformed",
			routes: map[string]string{
				"/data/episodes-index.json": `{"not":"a list"`,
				"/data/topics.json":         topicsJSON,
			},
			wantFeed: FeedIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := feedServer(t, tt.routes, nil)

			cat, err := managerFor(server).LoadCatalog(context.Background())
			assert.Nil(t, cat)

			var loadErr *storage.LoadError
			require.True(t, errors.As(err, &loadErr), "got %v", err)
			assert.Equal(t, storage.StageInit, loadErr.Stage)
			assert.Equal(t, tt.wantFeed, loadErr.Feed)
		})
	}
}

func TestManager_LoadDetails(t *testing.T) {
	server := feedServer(t, map[string]string{"/data/episodes.json": episodesJSON}, nil)

	details, err := managerFor(server).LoadDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Hello", details[0].Transcript)
	assert.Equal(t, "https://www.youtube.com/watch?v=a", details[0].YouTubeURL)
}

func TestManager_LoadDetails_Error(t *testing.T) {
	server := feedServer(t, map[string]string{}, nil)

	_, err := managerFor(server).LoadDetails(context.Background())

	var loadErr *storage.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, storage.StageDetail, loadErr.Stage)
	assert.Equal(t, FeedEpisodes, loadErr.Feed)
}

func TestManager_LocalFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "episodes-index.json"), []byte(indexJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "topics.json"), []byte(topicsJSON), 0o644))

	cfg := config.TestConfig()
	cfg.Feeds.Index = filepath.Join(dir, "episodes-index.json")
	cfg.Feeds.Topics = "file://" + filepath.Join(dir, "topics.json")

	cat, err := NewManager(cfg).LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Episodes, 2)
}
