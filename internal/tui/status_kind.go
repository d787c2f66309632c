package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind indicates severity for status messages.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

func (k StatusKind) style() lipgloss.Style {
	switch k {
	case StatusSuccess:
		return StatusSuccessStyle
	case StatusWarn:
		return StatusWarnStyle
	case StatusError:
		return StatusErrorStyle
	default:
		return StatusInfoStyle
	}
}

func (k StatusKind) icon() string {
	switch k {
	case StatusSuccess:
		return "✓ "
	case StatusWarn:
		return "! "
	case StatusError:
		return "✗ "
	default:
		return ""
	}
}

// noticeTTL is how long a one-shot notice stays in the status bar.
const noticeTTL = 4 * time.Second

// notice is a one-shot status bar message. It is dropped after noticeTTL or
// on the next key press, whichever comes first.
type notice struct {
	text string
	kind StatusKind
	seq  int
}

func (n notice) render() string {
	if n.text == "" {
		return ""
	}
	return n.kind.style().Render(n.kind.icon() + n.text)
}
