package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/castdex/internal/catalog"
	"github.com/pders01/castdex/internal/storage"
)

// DefaultMaxKeywords is how many keyword tags a card shows.
const DefaultMaxKeywords = 5

const (
	emptyTitle = "No episodes found"
	emptyHint  = "Try adjusting your search or filter criteria"
)

// CardText holds the lines a list item shows. Summary is empty when the
// episode has no description.
type CardText struct {
	Title       string
	Description string
	Summary     string
}

// cardKeywords clamps a configured tag count to the card maximum.
func cardKeywords(n int) int {
	if n <= 0 || n > DefaultMaxKeywords {
		return DefaultMaxKeywords
	}
	return n
}

// Card builds the list item text for ep. Fields are sanitized and folded
// onto one line each; the TUI list draws them as plain text.
func Card(ep storage.EpisodeSummary, maxKeywords int) CardText {
	guest := Inline(ep.Guest)
	title := Inline(ep.Title)
	if guest == "" {
		guest = Inline(ep.Slug)
	}

	meta := joinNonEmpty(" • ",
		FormatDate(ep),
		FormatDuration(ep),
		FormatNumber(ep.ViewCount)+" views",
	)
	if tags := Keywords(ep.Keywords, cardKeywords(maxKeywords)); len(tags) > 0 {
		meta += "  " + formatTags(tags)
	}

	return CardText{
		Title:       joinNonEmpty(" · ", guest, title),
		Description: meta,
		Summary:     Inline(ep.Description),
	}
}

func formatTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}

var (
	guestStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Faint(true)
	hintStyle  = lipgloss.NewStyle().Italic(true)
)

// List renders a view as text blocks, one per episode, wrapped to width.
// An empty view renders a distinct empty-state message instead.
func List(view []storage.EpisodeSummary, width, maxKeywords int) string {
	if len(view) == 0 {
		return Empty()
	}
	if width <= 0 {
		width = 80
	}
	body := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for i, ep := range view {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(guestStyle.Render(TruncateEnd(orSlug(ep), width)))
		b.WriteString("\n")
		if title := Inline(ep.Title); title != "" {
			b.WriteString(body.Render(title))
			b.WriteString("\n")
		}
		meta := joinNonEmpty(" • ", FormatDate(ep), FormatDuration(ep), FormatNumber(ep.ViewCount)+" views")
		b.WriteString(metaStyle.Render(meta))
		b.WriteString("\n")
		if desc := Inline(ep.Description); desc != "" {
			b.WriteString(body.Render(desc))
			b.WriteString("\n")
		}
		if tags := Keywords(ep.Keywords, cardKeywords(maxKeywords)); len(tags) > 0 {
			b.WriteString(metaStyle.Render(formatTags(tags)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Empty is the block shown when no episode passes the filters.
func Empty() string {
	return guestStyle.Render(emptyTitle) + "\n" + hintStyle.Render(emptyHint) + "\n"
}

func orSlug(ep storage.EpisodeSummary) string {
	if g := Inline(ep.Guest); g != "" {
		return g
	}
	return Inline(ep.Slug)
}

// Stats renders the status counter for a view of shown out of total.
func Stats(shown, total int) string {
	return catalog.Stats{Shown: shown, Total: total}.String()
}

// TopicLabel renders a topic picker entry.
func TopicLabel(t storage.Topic) string {
	name := Inline(t.DisplayName)
	if name == "" {
		name = Inline(t.Name)
	}
	return fmt.Sprintf("%s (%d)", name, t.Count)
}
