package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pders01/castdex/internal/config"
	"github.com/pders01/castdex/internal/validation"
)

const (
	defaultUserAgent = "castdex/1.0 (https://github.com/pders01/castdex)"
	defaultTimeout   = 30 * time.Second
)

// Fetcher opens feed documents from HTTP or the local filesystem.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(cfg *config.Config) *Fetcher {
	timeout := defaultTimeout
	userAgent := defaultUserAgent
	if cfg != nil {
		if cfg.Feeds.HTTPTimeout > 0 {
			timeout = cfg.Feeds.HTTPTimeout
		}
		if cfg.Feeds.UserAgent != "" {
			userAgent = cfg.Feeds.UserAgent
		}
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Open returns the body of location. The caller closes it.
func (f *Fetcher) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	src, err := validation.ParseSource(location)
	if err != nil {
		return nil, err
	}

	switch src.Kind {
	case validation.SourceHTTP:
		return f.get(ctx, src.Target)
	case validation.SourceFile:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file, err := os.Open(src.Target)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", src.Target, err)
		}
		return file, nil
	default:
		return nil, fmt.Errorf("%s locations are snapshots, not documents", src.Kind)
	}
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json, application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
