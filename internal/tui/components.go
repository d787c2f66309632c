package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/castdex/internal/render"
)

// renderSearchFrame wraps the search input in a rounded border that lights
// up while the input has focus.
func renderSearchFrame(inputView string, focused bool, contentWidth int) string {
	border := MutedColor
	if focused {
		border = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderFatal fills the screen with a catalog load failure. Nothing else
// is drawn once init has failed.
func renderFatal(err error, width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		ErrorMessageStyle.Render("✗ Could not load the episode catalog"),
		"",
		lipgloss.NewStyle().Foreground(TextColor).Width(max(width-8, 20)).Render(render.Text(err.Error())),
		"",
		HelpStyle.Render("Check the feed locations in your config, then restart. Press q to quit."),
	)
	return renderCentered(width, height, body)
}

func renderSeparator(width int) string {
	return SeparatorStyle.Render(strings.Repeat("─", max(width-1, 1)))
}

// renderStatusBar joins the status text and key hints on one line cut to width.
func renderStatusBar(status string, commands []string, width int) string {
	parts := make([]string, 0, 2)
	if status != "" {
		parts = append(parts, status)
	}
	if len(commands) > 0 {
		parts = append(parts, strings.Join(commands, " • "))
	}
	line := strings.Join(parts, "  │  ")
	if width > 2 {
		line = render.TruncateEnd(line, width-2)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Foreground(MutedColor).
		Render(line)
}
