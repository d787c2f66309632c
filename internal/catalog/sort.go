package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pders01/castdex/internal/storage"
)

// SortKey selects the ordering of the filtered view.
type SortKey string

const (
	SortDateDesc     SortKey = "date-desc"
	SortDateAsc      SortKey = "date-asc"
	SortGuestAsc     SortKey = "guest-asc"
	SortViewsDesc    SortKey = "views-desc"
	SortDurationDesc SortKey = "duration-desc"
	SortDurationAsc  SortKey = "duration-asc"

	DefaultSort = SortDateDesc
)

var sortKeys = []SortKey{
	SortDateDesc,
	SortDateAsc,
	SortGuestAsc,
	SortViewsDesc,
	SortDurationDesc,
	SortDurationAsc,
}

// SortKeys returns the named orderings in menu order.
func SortKeys() []SortKey {
	return slices.Clone(sortKeys)
}

// ParseSortKey validates a user supplied key.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(sortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want one of %s)", s, joinKeys())
}

func joinKeys() string {
	names := make([]string, len(sortKeys))
	for i, k := range sortKeys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func (k SortKey) String() string {
	return string(k)
}

// Label is the human readable name used in menus.
func (k SortKey) Label() string {
	switch k {
	case SortDateDesc:
		return "Newest first"
	case SortDateAsc:
		return "Oldest first"
	case SortGuestAsc:
		return "Guest (A-Z)"
	case SortViewsDesc:
		return "Most viewed"
	case SortDurationDesc:
		return "Longest first"
	case SortDurationAsc:
		return "Shortest first"
	default:
		return "Unsorted"
	}
}

// Next cycles through the named orderings.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortKeys, k)
	return sortKeys[(i+1)%len(sortKeys)]
}

// Sort orders episodes in place by key. The sort is stable; an unknown key
// leaves the order untouched.
func Sort(episodes []storage.EpisodeSummary, key SortKey) {
	switch key {
	case SortDateDesc, SortDateAsc:
		sortByDate(episodes, key == SortDateDesc)
	case SortGuestAsc:
		c := collate.New(language.English)
		slices.SortStableFunc(episodes, func(a, b storage.EpisodeSummary) int {
			return c.CompareString(a.Guest, b.Guest)
		})
	case SortViewsDesc:
		slices.SortStableFunc(episodes, func(a, b storage.EpisodeSummary) int {
			return cmp.Compare(b.ViewCount, a.ViewCount)
		})
	case SortDurationDesc:
		slices.SortStableFunc(episodes, func(a, b storage.EpisodeSummary) int {
			return cmp.Compare(b.DurationSeconds, a.DurationSeconds)
		})
	case SortDurationAsc:
		slices.SortStableFunc(episodes, func(a, b storage.EpisodeSummary) int {
			return cmp.Compare(a.DurationSeconds, b.DurationSeconds)
		})
	}
}

// sortByDate parses each date once; unparsable dates are the zero time and
// therefore the earliest.
func sortByDate(episodes []storage.EpisodeSummary, desc bool) {
	type dated struct {
		ep   storage.EpisodeSummary
		unix int64
	}
	tmp := make([]dated, len(episodes))
	for i, ep := range episodes {
		t := ep.PublishedAt()
		unix := int64(math.MinInt64)
		if !t.IsZero() {
			unix = t.Unix()
		}
		tmp[i] = dated{ep: ep, unix: unix}
	}
	slices.SortStableFunc(tmp, func(a, b dated) int {
		if desc {
			return cmp.Compare(b.unix, a.unix)
		}
		return cmp.Compare(a.unix, b.unix)
	})
	for i := range tmp {
		episodes[i] = tmp[i].ep
	}
}
