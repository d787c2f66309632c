package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/castdex/internal/catalog"
	"github.com/pders01/castdex/internal/config"
	"github.com/pders01/castdex/internal/debounce"
	"github.com/pders01/castdex/internal/debuglog"
	"github.com/pders01/castdex/internal/detail"
	"github.com/pders01/castdex/internal/media"
	"github.com/pders01/castdex/internal/render"
	"github.com/pders01/castdex/internal/storage"
)

const defaultDebounce = 300 * time.Millisecond

// Source provides the catalog feeds. feed.Manager and storage.Store both
// satisfy it.
type Source interface {
	LoadCatalog(ctx context.Context) (*storage.Catalog, error)
	LoadDetails(ctx context.Context) ([]storage.EpisodeDetail, error)
}

// Opener launches an episode link outside the terminal.
type Opener interface {
	Open(url string) error
	Player() string
}

type Option func(*App)

// WithClock replaces the clock driving the search debouncer.
func WithClock(c debounce.Clock) Option {
	return func(a *App) { a.clock = c }
}

func WithOpener(o Opener) Option {
	return func(a *App) { a.launcher = o }
}

// WithContext bounds every feed load the app starts.
func WithContext(ctx context.Context) Option {
	return func(a *App) { a.ctx = ctx }
}

type App struct {
	ctx         context.Context
	config      *config.Config
	source      Source
	state       *catalog.State
	loader      *detail.Loader
	clock       debounce.Clock
	debouncer   *debounce.Debouncer
	queries     queryMailbox
	querySeq    int
	markdown    *render.Markdown
	launcher    Opener
	keyHandler  *KeyHandler
	episodeList list.Model
	topicList   list.Model
	searchInput textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	help        help.Model
	view        View
	width       int
	height      int
	err         error
	notice      notice
	noticeSeq   int
	loadingSlug string
	current     *storage.EpisodeDetail
	maxKeywords int
}

func NewApp(src Source, cfg *config.Config, opts ...Option) *App {
	episodeList := list.New([]list.Item{}, episodeDelegate{}, 0, 0)
	episodeList.Title = "› episodes"
	episodeList.SetShowStatusBar(false)
	episodeList.SetFilteringEnabled(false)
	episodeList.SetShowHelp(false)

	topicDelegate := list.NewDefaultDelegate()
	topicDelegate.ShowDescription = false
	topicList := list.New([]list.Item{}, topicDelegate, 0, 0)
	topicList.Title = "› topics"
	topicList.SetShowStatusBar(false)
	topicList.SetFilteringEnabled(false)
	topicList.SetShowHelp(false)

	si := textinput.New()
	si.Prompt = "› "
	si.Placeholder = "Search guests, titles, descriptions, keywords..."

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	maxKeywords := cfg.UI.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = render.DefaultMaxKeywords
	}

	app := &App{
		ctx:         context.Background(),
		config:      cfg,
		source:      src,
		loader:      detail.NewLoader(src.LoadDetails),
		queries:     make(queryMailbox, 1),
		markdown:    render.NewMarkdown(cfg.UI.MarkdownStyle, cfg.UI.WordWrapMinWidth, cfg.UI.WordWrapMaxWidth),
		episodeList: episodeList,
		topicList:   topicList,
		searchInput: si,
		viewport:    viewport.New(0, 0),
		spinner:     sp,
		help:        help.New(),
		view:        ViewLoading,
		maxKeywords: maxKeywords,
	}
	for _, opt := range opts {
		opt(app)
	}

	wait := cfg.UI.Debounce
	if wait <= 0 {
		wait = defaultDebounce
	}
	app.debouncer = debounce.New(wait, app.clock)
	if app.launcher == nil {
		app.launcher = media.NewLauncher(cfg)
	}
	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadCatalog(),
		a.waitForQuery(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		if a.view == ViewDetail && a.current != nil {
			cmds = append(cmds, a.renderDetail(*a.current, msg.Width))
		}

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case spinner.TickMsg:
		if a.view != ViewLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case catalogLoadedMsg:
		a.setCatalog(msg.catalog)
		a.view = ViewBrowse

	case catalogErrorMsg:
		a.err = msg.err
		a.view = ViewFatal

	case queryFiredMsg:
		if msg.seq == a.querySeq && a.state != nil {
			a.applyQuery(msg.query)
		}
		cmds = append(cmds, a.waitForQuery())

	case detailRenderedMsg:
		if msg.slug == a.loadingSlug {
			a.loadingSlug = ""
			d := msg.detail
			a.current = &d
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.view = ViewDetail
		} else if a.view == ViewDetail && a.current != nil && a.current.Slug == msg.slug {
			a.viewport.SetContent(msg.content)
		}

	case detailErrorMsg:
		if msg.slug != a.loadingSlug {
			return a, nil
		}
		a.loadingSlug = ""
		if errors.Is(msg.err, detail.ErrNotFound) {
			debuglog.Debugf("no detail record for %s", msg.slug)
			return a, nil
		}
		return a, a.setNotice(MsgDetailFailed(msg.err), StatusError)

	case mediaOpenedMsg:
		if msg.err != nil {
			return a, a.setNotice(msg.err.Error(), StatusError)
		}

	case noticeExpiredMsg:
		if msg.seq == a.notice.seq {
			a.notice = notice{}
		}
	}

	switch a.view {
	case ViewDetail:
		newViewport, cmd := a.viewport.Update(msg)
		a.viewport = newViewport
		cmds = append(cmds, cmd)
	case ViewBrowse:
		if !a.searchInput.Focused() {
			break
		}
		newSearchInput, cmd := a.searchInput.Update(msg)
		a.searchInput = newSearchInput
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	// Search frame (3), separator and status bar (2).
	a.episodeList.SetSize(width, max(height-5, 3))
	a.topicList.SetSize(width, max(height-2, 3))
	a.viewport.Width = width
	a.viewport.Height = max(height-3, 1)
	a.help.Width = width

	// Prompt, cursor and the frame's border and padding take 10 cells.
	a.searchInput.Width = max(width-10, 10)
}

func (a *App) setCatalog(c *storage.Catalog) {
	a.state = catalog.NewState(c.Episodes, c.Topics)
	a.refreshEpisodes()
	a.refreshTopics()
	debuglog.Infof("catalog ready: %d episodes, %d topics", len(c.Episodes), len(c.Topics))
}

func (a *App) refreshEpisodes() {
	view := a.state.View()
	items := make([]list.Item, len(view))
	for i, ep := range view {
		items[i] = episodeItem{ep: ep, card: render.Card(ep, a.maxKeywords)}
	}
	a.episodeList.SetItems(items)
	a.episodeList.ResetSelected()
}

func (a *App) refreshTopics() {
	topics := a.state.Topics()
	items := make([]list.Item, 0, len(topics)+1)
	items = append(items, topicItem{label: MsgAllTopics})
	for _, t := range topics {
		items = append(items, topicItem{name: t.Name, label: render.TopicLabel(t)})
	}
	a.topicList.SetItems(items)
}

func (a *App) applyQuery(q string) {
	a.state.SetQuery(q)
	a.refreshEpisodes()
	debuglog.Debugf("query %q: %s", q, a.state.Stats())
}

// scheduleQuery debounces a search box edit.
func (a *App) scheduleQuery(q string) {
	a.querySeq++
	fired := queryFiredMsg{seq: a.querySeq, query: q}
	a.debouncer.Trigger(func() { a.queries.offer(fired) })
}

// applyQueryNow skips the debounce wait.
func (a *App) applyQueryNow(q string) {
	a.debouncer.Cancel()
	a.querySeq++
	a.applyQuery(q)
}

func (a *App) setNotice(text string, kind StatusKind) tea.Cmd {
	a.noticeSeq++
	a.notice = notice{text: text, kind: kind, seq: a.noticeSeq}
	seq := a.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (a *App) clearNotice() {
	a.notice = notice{}
}

func (a *App) View() string {
	if a.view == ViewFatal {
		return renderFatal(a.err, a.width, a.height)
	}

	contentHeight := max(a.height-2, 0)
	var content string

	switch a.view {
	case ViewLoading:
		content = renderCentered(a.width, contentHeight,
			GetCompactBanner(a.spinner.View()+" "+MsgLoadingCatalog))

	case ViewBrowse:
		frame := renderSearchFrame(a.searchInput.View(), a.searchInput.Focused(), a.searchInput.Width+3)
		var body string
		if len(a.state.View()) == 0 {
			body = renderCentered(a.width, max(contentHeight-3, 2), render.Empty())
		} else {
			body = a.episodeList.View()
		}
		content = lipgloss.JoinVertical(lipgloss.Top, frame, body)
		if a.help.ShowAll {
			content = lipgloss.JoinVertical(lipgloss.Top, content, a.help.View(a.keyHandler.keys))
		}

	case ViewTopics:
		content = a.topicList.View()

	case ViewDetail:
		content = a.viewport.View()
	}

	content = ContentWrapper(a.width, contentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Top, content, renderSeparator(a.width), a.getCustomStatusBar())
}

// statusLine is the left part of the status bar: a pending notice, the
// detail loading indicator, or the result counter.
func (a *App) statusLine() string {
	if n := a.notice.render(); n != "" {
		return n
	}
	if a.loadingSlug != "" {
		return StatusInfoStyle.Render(MsgLoadingEpisode)
	}
	if a.state == nil {
		return ""
	}
	stats := a.state.Stats()
	return render.Stats(stats.Shown, stats.Total) + " · " + render.Inline(a.state.Filter().Describe(a.state.Topics()))
}

func (a *App) getCustomStatusBar() string {
	return renderStatusBar(a.statusLine(), a.keyHandler.GetHelpForCurrentView(), a.width)
}

// selectedEpisode returns the summary under the cursor.
func (a *App) selectedEpisode() (storage.EpisodeSummary, bool) {
	item, ok := a.episodeList.SelectedItem().(episodeItem)
	if !ok {
		return storage.EpisodeSummary{}, false
	}
	return item.ep, true
}

type episodeItem struct {
	ep   storage.EpisodeSummary
	card render.CardText
}

func (i episodeItem) Title() string       { return i.card.Title }
func (i episodeItem) Description() string { return i.card.Description }
func (i episodeItem) FilterValue() string { return i.ep.Slug }

type topicItem struct {
	name  string
	label string
}

func (i topicItem) Title() string       { return i.label }
func (i topicItem) Description() string { return "" }
func (i topicItem) FilterValue() string { return i.name }

type catalogLoadedMsg struct {
	catalog *storage.Catalog
}

type catalogErrorMsg struct {
	err error
}

type queryFiredMsg struct {
	seq   int
	query string
}

type detailRenderedMsg struct {
	slug    string
	detail  storage.EpisodeDetail
	content string
}

type detailErrorMsg struct {
	slug string
	err  error
}

type mediaOpenedMsg struct {
	err error
}

type noticeExpiredMsg struct {
	seq int
}
