package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgLoadingCatalog = "Loading catalog…"
	MsgLoadingEpisode = "Loading episode…"
	MsgNoLink         = "No video link for this episode"
	MsgAllTopics      = "All topics"
)

func MsgOpening(player string) string {
	if player == "" {
		return "Opening in browser…"
	}
	return fmt.Sprintf("Opening in %s…", player)
}

func MsgSortedBy(label string) string {
	return "Sorted by " + strings.ToLower(label)
}

func MsgDetailFailed(err error) string {
	return fmt.Sprintf("Could not load episode: %v", err)
}
