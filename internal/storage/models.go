package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// EpisodeSummary is one entry of the episode index feed.
type EpisodeSummary struct {
	Slug              string   `json:"slug"`
	Guest             string   `json:"guest"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Keywords          []string `json:"keywords"`
	PublishDate       string   `json:"publish_date"`
	Duration          string   `json:"duration"`
	DurationSeconds   int      `json:"duration_seconds"`
	ViewCount         int      `json:"view_count"`
	YouTubeURL        string   `json:"youtube_url,omitempty"`
	VideoID           string   `json:"video_id,omitempty"`
	Channel           string   `json:"channel,omitempty"`
	TranscriptPreview string   `json:"transcript_preview,omitempty"`
}

// PublishedAt parses PublishDate. Missing or unparsable dates yield the zero
// time, which orders before every real date.
func (e EpisodeSummary) PublishedAt() time.Time {
	s := strings.TrimSpace(e.PublishDate)
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EpisodeDetail is one entry of the full episode feed, transcript included.
type EpisodeDetail struct {
	EpisodeSummary
	Transcript string `json:"transcript"`
}

// TopicEpisode references an episode from a topic's membership list.
type TopicEpisode struct {
	Slug  string `json:"slug"`
	Guest string `json:"guest,omitempty"`
}

// Topic groups episodes by an explicit membership list.
type Topic struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Count       int            `json:"count"`
	Episodes    []TopicEpisode `json:"episodes"`
}

// Label is the text shown in the topic picker.
func (t Topic) Label() string {
	name := t.DisplayName
	if name == "" {
		name = t.Name
	}
	return fmt.Sprintf("%s (%d)", name, t.Count)
}

// Catalog is the pair of feeds required before the first render.
type Catalog struct {
	Episodes []EpisodeSummary
	Topics   []Topic
}

// Stage tells which load a LoadError came from.
type Stage int

const (
	StageInit Stage = iota
	StageDetail
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// LoadError reports a feed that could not be fetched or decoded.
type LoadError struct {
	Stage Stage
	Feed  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s feed (%s): %v", e.Feed, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SnapshotMeta describes a bbolt snapshot.
type SnapshotMeta struct {
	BuiltAt  time.Time `json:"built_at"`
	Episodes int       `json:"episodes"`
	Details  int       `json:"details"`
	Topics   int       `json:"topics"`
}
