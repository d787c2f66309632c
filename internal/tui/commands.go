package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/castdex/internal/debuglog"
	"github.com/pders01/castdex/internal/render"
	"github.com/pders01/castdex/internal/storage"
)

func (a *App) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		c, err := a.source.LoadCatalog(a.ctx)
		if err != nil {
			debuglog.Errorf("catalog load failed: %v", err)
			return catalogErrorMsg{err: err}
		}
		return catalogLoadedMsg{catalog: c}
	}
}

// loadDetail resolves slug through the detail loader and renders it. The
// list keeps handling input while this runs.
func (a *App) loadDetail(slug string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		d, err := a.loader.Get(a.ctx, slug)
		if err != nil {
			return detailErrorMsg{slug: slug, err: err}
		}
		return a.renderDetail(d, width)()
	}
}

func (a *App) renderDetail(d storage.EpisodeDetail, width int) tea.Cmd {
	return func() tea.Msg {
		md := render.Detail(d)
		content, err := a.markdown.Render(md, width)
		if err != nil {
			debuglog.Warnf("rendering %s: %v", d.Slug, err)
			content = md
		}
		return detailRenderedMsg{slug: d.Slug, detail: d, content: content}
	}
}

func (a *App) openURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := a.launcher.Open(url); err != nil {
			return mediaOpenedMsg{err: fmt.Errorf("open: %w", err)}
		}
		return mediaOpenedMsg{}
	}
}

// waitForQuery delivers the next debounced search to Update. It is
// re-armed every time a query arrives.
func (a *App) waitForQuery() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-a.queries:
			return msg
		case <-a.ctx.Done():
			return nil
		}
	}
}

// queryMailbox holds at most one fired query; a newer one replaces an
// unread older one.
type queryMailbox chan queryFiredMsg

func (m queryMailbox) offer(msg queryFiredMsg) {
	for {
		select {
		case m <- msg:
			return
		default:
			select {
			case <-m:
			default:
			}
		}
	}
}
