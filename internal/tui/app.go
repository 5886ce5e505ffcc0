package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/fellows/internal/listing"
	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/storage"
	"github.com/nikbrunner/fellows/internal/tui/layout"
)

// App is the main bubbletea model for the fellowship browser.
type App struct {
	ctrl         *listing.Controller
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	logger       *slog.Logger

	mode   Mode
	cursor int // index into Items()

	// For gg command
	lastKeyWasG bool

	search  SearchState
	apiKey  APIKeyState
	scrape  ScrapeState
	spinner spinner.Model

	// Title of the last removed card, for the undo prompt once the card has
	// left the list.
	removedTitle string

	lastScrape    model.ScrapeRequest
	markdownStyle string
	openURL       func(string) error
	copyText      func(string) error

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Controller   *listing.Controller
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Logger       *slog.Logger

	// LastScrape preselects the scrape dialog answers.
	LastScrape model.ScrapeRequest

	// MarkdownStyle is a glamour standard style name. Defaults to "dark".
	MarkdownStyle string

	// OpenURL and CopyText default to the system browser and clipboard.
	OpenURL  func(string) error
	CopyText func(string) error
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Meta

	app := App{
		ctrl:          params.Controller,
		keys:          keys,
		styles:        styles,
		layoutConfig:  layoutCfg,
		logger:        logger,
		search:        NewSearchState(layoutCfg),
		apiKey:        NewAPIKeyState(layoutCfg),
		spinner:       sp,
		lastScrape:    params.LastScrape,
		markdownStyle: params.MarkdownStyle,
		openURL:       params.OpenURL,
		copyText:      params.CopyText,
		width:         80,
		height:        24,
	}
	if app.openURL == nil {
		app.openURL = OpenURL
	}
	if app.copyText == nil {
		app.copyText = CopyText
	}
	if app.lastScrape.Browser == "" {
		app.lastScrape = storage.DefaultPrefs().Scrape
	}
	return app
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// FilterQuery returns the active local filter.
func (a App) FilterQuery() string {
	return a.search.FilterQuery
}

// Controller returns the listing controller behind the view.
func (a App) Controller() *listing.Controller {
	return a.ctrl
}

// Items returns the cards as displayed, after the local filter.
func (a App) Items() []Item {
	return filterItems(a.ctrl.Cards(), a.search.FilterQuery)
}

// Selected returns the card under the cursor.
func (a App) Selected() (Item, bool) {
	items := a.Items()
	if a.cursor < 0 || a.cursor >= len(items) {
		return Item{}, false
	}
	return items[a.cursor], true
}

// Prefs returns what should be remembered for the next session.
func (a App) Prefs() storage.Prefs {
	return storage.Prefs{Filter: a.ctrl.Filter(), Scrape: a.lastScrape}
}

func (a *App) clampCursor() {
	n := len(a.Items())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.ctrl.Init(), a.spinner.Tick)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case linkDoneMsg:
		if msg.err != nil {
			a.logger.Warn("link action failed", slog.String("action", msg.action), slog.Any("error", msg.err))
			return a, a.ctrl.Notify("Could not "+msg.action+" link.", true)
		}
		if msg.action == linkCopy {
			return a, a.ctrl.Notify("Link copied.", false)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if cmd, ok := a.ctrl.Update(msg); ok {
		a.clampCursor()
		return a, cmd
	}

	// Cursor blink and similar messages belong to the focused input.
	var cmd tea.Cmd
	switch a.mode {
	case ModeFilter:
		a.search.FilterInput, cmd = a.search.FilterInput.Update(msg)
	case ModeKeywords:
		a.search.KeywordsInput, cmd = a.search.KeywordsInput.Update(msg)
	case ModeAPIKey:
		a.apiKey.Input, cmd = a.apiKey.Input.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
