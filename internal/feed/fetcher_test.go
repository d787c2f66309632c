package feed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/castdex/internal/config"
)

func TestFetcher_Open_HTTP(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectBody     string
		expectError    bool
	}{
		{
			name: "successful fetch",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != "castdex-test/1.0" {
					t.Errorf("expected User-Agent castdex-test/1.0, got %s", r.Header.Get("User-Agent"))
				}
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`[]`))
			},
			expectBody: `[]`,
		},
		{
			name: "server error",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectError: true,
		},
		{
			name: "not found",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			fetcher := NewFetcher(config.TestConfig())
			body, err := fetcher.Open(context.Background(), server.URL+"/feed.json")
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer body.Close()

			data, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, tt.expectBody, string(data))
		})
	}
}

func TestFetcher_Open_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok":true}`), 0o644))

	fetcher := NewFetcher(config.TestConfig())

	for _, location := range []string{path, "file://" + path} {
		body, err := fetcher.Open(context.Background(), location)
		require.NoError(t, err, location)
		data, err := io.ReadAll(body)
		body.Close()
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(data))
	}
}

func TestFetcher_Open_Errors(t *testing.T) {
	fetcher := NewFetcher(config.TestConfig())

	_, err := fetcher.Open(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err, "missing file")

	_, err = fetcher.Open(context.Background(), "bolt:///tmp/snap.db")
	assert.Error(t, err, "snapshots are not documents")

	_, err = fetcher.Open(context.Background(), "ftp://example.org/x.json")
	assert.Error(t, err, "unsupported scheme")
}

func TestFetcher_Open_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(config.TestConfig()).Open(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFetcher_Defaults(t *testing.T) {
	f := NewFetcher(nil)
	assert.Equal(t, defaultTimeout, f.client.Timeout)
	assert.Equal(t, defaultUserAgent, f.userAgent)
}
