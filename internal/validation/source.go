package validation

import (
	"fmt"
	"strings"
)

// SourceKind says how a feed location is read.
type SourceKind int

const (
	SourceHTTP SourceKind = iota
	SourceFile
	SourceBolt
)

func (k SourceKind) String() string {
	switch k {
	case SourceHTTP:
		return "http"
	case SourceFile:
		return "file"
	case SourceBolt:
		return "bolt"
	default:
		return "unknown"
	}
}

// Source is a validated feed location.
type Source struct {
	Kind SourceKind
	// Target is the normalized URL for SourceHTTP and the expanded
	// filesystem path otherwise.
	Target string
}

// ParseSource classifies a location: http(s) URLs, bolt:// snapshots,
// and everything else (with an optional file:// prefix) as a local file.
func ParseSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)

	switch {
	case location == "":
		return Source{}, fmt.Errorf("feed location cannot be empty")
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := NewFeedURLValidator().Validate(location)
		if err != nil {
			return Source{}, fmt.Errorf("feed location %q: %w", location, err)
		}
		return Source{Kind: SourceHTTP, Target: u}, nil
	case strings.HasPrefix(lower, "bolt://"):
		p, err := ExpandPath(location[len("bolt://"):])
		if err != nil {
			return Source{}, fmt.Errorf("snapshot location %q: %w", location, err)
		}
		return Source{Kind: SourceBolt, Target: p}, nil
	case strings.Contains(lower, "://") && !strings.HasPrefix(lower, "file://"):
		return Source{}, fmt.Errorf("feed location %q: unsupported scheme", location)
	default:
		p, err := ExpandPath(location[prefixLen(lower, "file://"):])
		if err != nil {
			return Source{}, fmt.Errorf("feed location %q: %w", location, err)
		}
		return Source{Kind: SourceFile, Target: p}, nil
	}
}

func prefixLen(s, prefix string) int {
	if strings.HasPrefix(s, prefix) {
		return len(prefix)
	}
	return 0
}
