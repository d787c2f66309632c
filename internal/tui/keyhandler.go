package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/castdex/internal/catalog"
	"github.com/pders01/castdex/internal/config"
)

// keyMap holds the bindings built from the key config. It doubles as the
// help.KeyMap for the expanded help view.
type keyMap struct {
	ForceQuit  key.Binding
	Quit       key.Binding
	Search     key.Binding
	Topics     key.Binding
	Sort       key.Binding
	SortDirect key.Binding
	Open       key.Binding
	OpenMedia  key.Binding
	Back       key.Binding
	Help       key.Binding
}

func newKeyMap(cfg *config.Config) keyMap {
	b := cfg.Keys.Bindings
	media := cfg.Keys.Modifier + "+" + b.OpenMedia

	sortKeys := make([]string, len(catalog.SortKeys()))
	for i := range sortKeys {
		sortKeys[i] = string(rune('1' + i))
	}

	return keyMap{
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
		Quit:       key.NewBinding(key.WithKeys(b.Quit), key.WithHelp(b.Quit, "quit")),
		Search:     key.NewBinding(key.WithKeys(b.Search), key.WithHelp(b.Search, "search")),
		Topics:     key.NewBinding(key.WithKeys(b.Topics), key.WithHelp(b.Topics, "topics")),
		Sort:       key.NewBinding(key.WithKeys(b.Sort), key.WithHelp(b.Sort, "sort")),
		SortDirect: key.NewBinding(key.WithKeys(sortKeys...), key.WithHelp("1-"+sortKeys[len(sortKeys)-1], "sort by")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		OpenMedia:  key.NewBinding(key.WithKeys(media), key.WithHelp(media, "watch")),
		Back:       key.NewBinding(key.WithKeys(b.Back), key.WithHelp(b.Back, "back")),
		Help:       key.NewBinding(key.WithKeys(b.Help), key.WithHelp(b.Help, "more")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Topics, k.Sort, k.Open, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Topics, k.Open, k.OpenMedia},
		{k.Sort, k.SortDirect, k.Back, k.Quit},
	}
}

type KeyHandler struct {
	app  *App
	keys keyMap
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{app: app, keys: newKeyMap(cfg)}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Notices last until the next key press.
	kh.app.clearNotice()

	if key.Matches(msg, kh.keys.ForceQuit) {
		return kh.app, tea.Quit
	}

	switch kh.app.view {
	case ViewLoading, ViewFatal:
		if key.Matches(msg, kh.keys.Quit, kh.keys.Back) {
			return kh.app, tea.Quit
		}
		return kh.app, nil
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(msg); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	return kh.app.view == ViewBrowse && kh.app.searchInput.Focused()
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	app := kh.app

	switch msg.String() {
	case "esc":
		app.searchInput.Blur()
		return app, nil
	case "enter":
		app.searchInput.Blur()
		app.applyQueryNow(sanitizeSearchInput(app.searchInput.Value()))
		return app, nil
	case "tab", "down":
		if len(app.episodeList.Items()) > 0 {
			app.searchInput.Blur()
		}
		return app, nil
	default:
		return kh.delegateToTextInput(msg)
	}
}

func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	app := kh.app
	prev := app.searchInput.Value()
	newSearchInput, cmd := app.searchInput.Update(msg)
	app.searchInput = newSearchInput

	if app.searchInput.Value() != prev {
		app.scheduleQuery(sanitizeSearchInput(app.searchInput.Value()))
	}
	return app, cmd
}

func (kh *KeyHandler) handleCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch kh.app.view {
	case ViewBrowse:
		return kh.handleBrowseKeys(msg)
	case ViewTopics:
		return kh.handleTopicsKeys(msg)
	case ViewDetail:
		return kh.handleDetailKeys(msg)
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	app := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return app, tea.Quit, true

	case key.Matches(msg, kh.keys.Search):
		app.searchInput.CursorEnd()
		return app, app.searchInput.Focus(), true

	case key.Matches(msg, kh.keys.Topics):
		kh.openTopics()
		return app, nil, true

	case key.Matches(msg, kh.keys.Sort):
		return app, kh.setSort(app.state.Filter().Sort.Next()), true

	case key.Matches(msg, kh.keys.SortDirect):
		keys := catalog.SortKeys()
		i := int(msg.String()[0] - '1')
		if i < 0 || i >= len(keys) {
			return app, nil, true
		}
		return app, kh.setSort(keys[i]), true

	case key.Matches(msg, kh.keys.Open):
		model, cmd := kh.openSelected()
		return model, cmd, true

	case key.Matches(msg, kh.keys.OpenMedia):
		ep, ok := app.selectedEpisode()
		if !ok {
			return app, nil, true
		}
		return app, kh.openMedia(ep.YouTubeURL), true

	case key.Matches(msg, kh.keys.Back):
		f := app.state.Filter()
		if f.Query == "" && f.Topic == "" && app.searchInput.Value() == "" {
			return app, nil, true
		}
		app.searchInput.Reset()
		app.debouncer.Cancel()
		app.querySeq++
		app.state.Apply(catalog.FilterState{Sort: f.Sort})
		app.refreshEpisodes()
		return app, nil, true

	case key.Matches(msg, kh.keys.Help):
		app.help.ShowAll = !app.help.ShowAll
		return app, nil, true
	}

	return app, nil, false
}

func (kh *KeyHandler) handleTopicsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	app := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return app, tea.Quit, true
	case key.Matches(msg, kh.keys.Back), key.Matches(msg, kh.keys.Topics):
		app.view = ViewBrowse
		return app, nil, true
	case key.Matches(msg, kh.keys.Open):
		if item, ok := app.topicList.SelectedItem().(topicItem); ok {
			app.state.SetTopic(item.name)
			app.refreshEpisodes()
		}
		app.view = ViewBrowse
		return app, nil, true
	}

	return app, nil, false
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	app := kh.app

	switch {
	case key.Matches(msg, kh.keys.Back), key.Matches(msg, kh.keys.Quit):
		app.view = ViewBrowse
		return app, nil, true
	case key.Matches(msg, kh.keys.OpenMedia):
		if app.current == nil {
			return app, nil, true
		}
		return app, kh.openMedia(app.current.YouTubeURL), true
	}

	return app, nil, false
}

// delegateToCharm lets the bubbles components handle navigation keys.
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	app := kh.app
	var cmd tea.Cmd

	switch app.view {
	case ViewBrowse:
		app.episodeList, cmd = app.episodeList.Update(msg)
	case ViewTopics:
		app.topicList, cmd = app.topicList.Update(msg)
	case ViewDetail:
		app.viewport, cmd = app.viewport.Update(msg)
	}

	return app, cmd
}

func (kh *KeyHandler) openTopics() {
	app := kh.app
	current := app.state.Filter().Topic
	for i, item := range app.topicList.Items() {
		if t, ok := item.(topicItem); ok && t.name == current {
			app.topicList.Select(i)
			break
		}
	}
	app.view = ViewTopics
}

func (kh *KeyHandler) setSort(k catalog.SortKey) tea.Cmd {
	app := kh.app
	app.state.SetSort(k)
	app.refreshEpisodes()
	return app.setNotice(MsgSortedBy(k.Label()), StatusInfo)
}

// openSelected starts loading the detail of the episode under the cursor.
// A slug unknown to the catalog does nothing.
func (kh *KeyHandler) openSelected() (tea.Model, tea.Cmd) {
	app := kh.app
	ep, ok := app.selectedEpisode()
	if !ok {
		return app, nil
	}
	if _, ok := app.state.Episode(ep.Slug); !ok {
		return app, nil
	}
	app.loadingSlug = ep.Slug
	return app, app.loadDetail(ep.Slug)
}

func (kh *KeyHandler) openMedia(url string) tea.Cmd {
	app := kh.app
	if strings.TrimSpace(url) == "" {
		return app.setNotice(MsgNoLink, StatusWarn)
	}
	return tea.Batch(
		app.openURL(url),
		app.setNotice(MsgOpening(app.launcher.Player()), StatusInfo),
	)
}

// sanitizeSearchInput drops control characters and surrounding whitespace
// from the search box value.
func sanitizeSearchInput(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// GetHelpForCurrentView returns the short key hints for the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	b := kh.keys
	hint := func(k key.Binding) string {
		h := k.Help()
		return h.Key + " " + h.Desc
	}

	switch kh.app.view {
	case ViewBrowse:
		if kh.isInTextInputMode() {
			return []string{"enter apply", "esc done"}
		}
		return []string{hint(b.Search), hint(b.Topics), hint(b.Sort), hint(b.Open), hint(b.Help)}
	case ViewTopics:
		return []string{hint(b.Open), hint(b.Back)}
	case ViewDetail:
		return []string{"↑/↓ scroll", hint(b.OpenMedia), hint(b.Back)}
	default:
		return nil
	}
}
