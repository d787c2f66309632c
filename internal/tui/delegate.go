package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/castdex/internal/render"
)

// episodeDelegate draws a card as three lines: guest and title, the
// date/duration/views line with tags, and the description.
type episodeDelegate struct{}

func (d episodeDelegate) Height() int  { return 3 }
func (d episodeDelegate) Spacing() int { return 1 }

func (d episodeDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d episodeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ep, ok := item.(episodeItem)
	if !ok {
		return
	}

	// Two columns go to the left border or its padding.
	width := max(m.Width()-2, 1)
	title := render.TruncateEnd(ep.card.Title, width)
	meta := render.TruncateEnd(ep.card.Description, width)
	summary := render.TruncateEnd(ep.card.Summary, width)

	line := lipgloss.NewStyle().PaddingLeft(2)
	titleStyle := line.Foreground(TextColor)
	metaStyle := line.Foreground(MutedColor)
	if index == m.Index() {
		line = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(AccentColor).
			PaddingLeft(1)
		titleStyle = line.Foreground(AccentColor).Bold(true)
		metaStyle = line.Foreground(SecondaryColor)
	}

	fmt.Fprintf(w, "%s\n%s\n%s",
		titleStyle.Render(title),
		metaStyle.Render(meta),
		metaStyle.Render(summary),
	)
}
