// Package builder turns a directory of transcript markdown files into the
// JSON feeds the browser reads, and optionally a bbolt snapshot.
package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pders01/castdex/internal/debuglog"
	"github.com/pders01/castdex/internal/feed"
	"github.com/pders01/castdex/internal/plugins"
	"github.com/pders01/castdex/internal/storage"
)

// Output file names, matching the default feed locations.
const (
	EpisodesFile = "episodes.json"
	IndexFile    = "episodes-index.json"
	TopicsFile   = "topics.json"
)

const previewLength = 500

// Options controls a build.
type Options struct {
	// Root holds episodes/<slug>/transcript.md and index/<topic>.md.
	Root string
	// OutDir receives the JSON feeds. Defaults to <Root>/data.
	OutDir string
	// RSS is an optional podcast or YouTube feed used to fill in
	// missing metadata.
	RSS string
	// Snapshot is an optional bbolt file written alongside the JSON.
	Snapshot string
	// Fetcher opens RSS. Required when RSS is set.
	Fetcher *feed.Fetcher
	// Resolver maps channel or playlist pages in RSS to their feed URL.
	// Nil means RSS is used as given.
	Resolver *plugins.Registry
}

// Result summarizes a build.
type Result struct {
	Episodes []storage.EpisodeDetail
	Topics   []storage.Topic
	Skipped  []string
	Enriched int
	// FeedURL and FeedTitle describe the enrichment feed actually read.
	FeedURL   string
	FeedTitle string
	OutDir    string
}

// Build reads the transcript tree and writes the feeds.
func Build(ctx context.Context, opts Options) (*Result, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("build root is required")
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(opts.Root, "data")
	}

	episodes, skipped, err := readEpisodes(filepath.Join(opts.Root, "episodes"))
	if err != nil {
		return nil, err
	}

	res := &Result{Episodes: episodes, Skipped: skipped, OutDir: outDir}

	if opts.RSS != "" {
		if opts.Fetcher == nil {
			return nil, fmt.Errorf("an RSS feed needs a fetcher")
		}
		res.FeedURL = opts.RSS
		if opts.Resolver != nil {
			info, err := opts.Resolver.Resolve(ctx, opts.RSS)
			if err != nil {
				return nil, fmt.Errorf("resolving RSS feed: %w", err)
			}
			res.FeedURL, res.FeedTitle = info.FeedURL, info.Title
		}
		items, err := loadEnrichment(ctx, opts.Fetcher, res.FeedURL)
		if err != nil {
			return nil, err
		}
		res.Enriched = enrich(res.Episodes, items)
	}

	topics, err := readTopics(filepath.Join(opts.Root, "index"))
	if err != nil {
		return nil, err
	}
	res.Topics = topics

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := writeJSON(filepath.Join(outDir, EpisodesFile), res.Episodes); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(outDir, IndexFile), indexOf(res.Episodes)); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(outDir, TopicsFile), res.Topics); err != nil {
		return nil, err
	}

	if opts.Snapshot != "" {
		if err := writeSnapshot(opts.Snapshot, res); err != nil {
			return nil, err
		}
	}

	debuglog.WithFields(map[string]any{
		"episodes": len(res.Episodes),
		"topics":   len(res.Topics),
		"skipped":  len(res.Skipped),
		"enriched": res.Enriched,
	}).Infof("build finished in %s", outDir)

	return res, nil
}

// readEpisodes parses every episodes/<slug>/transcript.md in slug order.
// Files that cannot be parsed are reported in skipped rather than failing
// the build.
func readEpisodes(dir string) ([]storage.EpisodeDetail, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading episodes directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	episodes := []storage.EpisodeDetail{}
	var skipped []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name(), "transcript.md")
		content, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}

		fm, body, err := parseTranscript(content)
		if err != nil {
			debuglog.Warnf("could not parse %s: %v", path, err)
			skipped = append(skipped, path)
			continue
		}
		episodes = append(episodes, toDetail(entry.Name(), fm, body))
	}
	return episodes, skipped, nil
}

func toDetail(slug string, fm *frontmatter, transcript string) storage.EpisodeDetail {
	keywords := fm.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return storage.EpisodeDetail{
		EpisodeSummary: storage.EpisodeSummary{
			Slug:            slug,
			Guest:           fm.Guest,
			Title:           fm.Title,
			Description:     fm.Description,
			Keywords:        keywords,
			PublishDate:     dateString(fm.PublishDate),
			Duration:        fm.Duration,
			DurationSeconds: fm.DurationSeconds,
			ViewCount:       fm.ViewCount,
			YouTubeURL:      fm.YouTubeURL,
			VideoID:         fm.VideoID,
			Channel:         fm.Channel,
		},
		Transcript: transcript,
	}
}

// indexOf drops transcripts and adds a preview of each.
func indexOf(details []storage.EpisodeDetail) []storage.EpisodeSummary {
	index := make([]storage.EpisodeSummary, len(details))
	for i, d := range details {
		s := d.EpisodeSummary
		s.TranscriptPreview = preview(d.Transcript)
		index[i] = s
	}
	return index
}

func preview(transcript string) string {
	r := []rune(transcript)
	if len(r) <= previewLength {
		return transcript
	}
	return string(r[:previewLength]) + "..."
}

// readTopics builds one topic per index/*.md page, most episodes first.
// README.md and episodes.md are not topics. A missing index directory
// yields no topics.
func readTopics(dir string) ([]storage.Topic, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	sort.Strings(paths)

	topics := []storage.Topic{}
	for _, path := range paths {
		base := filepath.Base(path)
		if base == "README.md" || base == "episodes.md" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		name := strings.TrimSuffix(base, ".md")
		links := topicLinks(content)
		topics = append(topics, storage.Topic{
			Name:        name,
			DisplayName: displayName(name),
			Count:       len(links),
			Episodes:    links,
		})
	}

	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Count > topics[j].Count })
	return topics, nil
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeSnapshot(path string, res *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	store, err := storage.NewStore(path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer store.Close()

	if err := store.SaveCatalog(indexOf(res.Episodes), res.Topics); err != nil {
		return fmt.Errorf("saving snapshot catalog: %w", err)
	}
	if err := store.SaveDetails(res.Episodes); err != nil {
		return fmt.Errorf("saving snapshot details: %w", err)
	}
	return nil
}
