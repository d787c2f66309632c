package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown renders detail documents with glamour, keeping one renderer per
// word-wrap width.
type Markdown struct {
	mu       sync.Mutex
	style    string
	minWrap  int
	maxWrap  int
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown returns a renderer. style is a glamour style name; "auto" or
// "" picks one from the terminal background.
func NewMarkdown(style string, minWrap, maxWrap int) *Markdown {
	if minWrap <= 0 {
		minWrap = 40
	}
	if maxWrap < minWrap {
		maxWrap = minWrap
	}
	return &Markdown{style: style, minWrap: minWrap, maxWrap: maxWrap}
}

// WrapWidth maps a terminal width to the word-wrap width used for it.
func (m *Markdown) WrapWidth(termWidth int) int {
	w := (termWidth * 9) / 10
	if w > m.maxWrap {
		w = m.maxWrap
	}
	if w < m.minWrap {
		w = m.minWrap
	}
	if termWidth < 50 {
		w = termWidth - 4
		if w < 20 {
			w = 20
		}
	}
	return w
}

func (m *Markdown) getRenderer(termWidth int) (*glamour.TermRenderer, error) {
	wrap := m.WrapWidth(termWidth)
	if m.renderer != nil && abs(m.width-wrap) <= 10 {
		return m.renderer, nil
	}

	styleOpt := glamour.WithAutoStyle()
	if m.style != "" && m.style != "auto" {
		styleOpt = glamour.WithStandardStyle(m.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	m.renderer = r
	m.width = wrap
	return r, nil
}

// Render renders md for a terminal termWidth cells wide.
func (m *Markdown) Render(md string, termWidth int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.getRenderer(termWidth)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
