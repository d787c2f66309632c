package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pders01/castdex/internal/storage"
)

const dateLayout = "Jan 2, 2006"

// FormatDate renders an episode's publish date, or "Unknown".
func FormatDate(ep storage.EpisodeSummary) string {
	t := ep.PublishedAt()
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format(dateLayout)
}

// FormatNumber groups thousands: 1234567 becomes "1,234,567".
func FormatNumber(n int) string {
	if n == 0 {
		return "0"
	}
	return humanize.Comma(int64(n))
}

// FormatDuration prefers the feed's duration string and falls back to the
// seconds count.
func FormatDuration(ep storage.EpisodeSummary) string {
	if d := Inline(ep.Duration); d != "" {
		return d
	}
	s := ep.DurationSeconds
	if s <= 0 {
		return "Unknown"
	}
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Keywords returns at most limit sanitized keywords. A limit of zero or
// less keeps them all.
func Keywords(keywords []string, limit int) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = Inline(kw)
		if kw == "" {
			continue
		}
		out = append(out, kw)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
