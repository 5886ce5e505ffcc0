package tui_test

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/fellows/internal/api"
	"github.com/nikbrunner/fellows/internal/api/apitest"
	"github.com/nikbrunner/fellows/internal/listing"
	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/platform/config"
	"github.com/nikbrunner/fellows/internal/platform/httpclient"
	"github.com/nikbrunner/fellows/internal/tui"
)

// harness drives an App against the in-memory backend. Commands run
// synchronously and timers are captured instead of started.
type harness struct {
	t       *testing.T
	backend *apitest.Server
	app     tui.App
	timers  []tea.Msg
	opened  []string
	copied  []string
}

func newHarness(t *testing.T, fellowships []model.Fellowship) *harness {
	t.Helper()
	backend, srv := apitest.Start(t, fellowships)

	cfg := &config.ClientConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
			Multiplier:      1,
		},
		CircuitBreaker: config.CircuitBreakerConfig{MaxFailures: 10, Timeout: time.Second, HalfOpenLimit: 1},
	}
	logger := slog.New(slog.DiscardHandler)
	client := api.New(httpclient.New(cfg, "backend", logger), logger)

	h := &harness{t: t, backend: backend}
	filter := model.DefaultFilterState()
	filter.MinStars = 0
	ctrl := listing.New(client, listing.Options{
		Filter: filter,
		Logger: logger,
		Timer: func(_ time.Duration, msg tea.Msg) tea.Cmd {
			h.timers = append(h.timers, msg)
			return nil
		},
	})

	h.app = tui.NewApp(tui.AppParams{
		Controller:    ctrl,
		MarkdownStyle: "notty",
		OpenURL: func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		},
		CopyText: func(text string) error {
			h.copied = append(h.copied, text)
			return nil
		},
	})
	h.update(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.run(ctrl.Init())
	return h
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	model, cmd := h.app.Update(msg)
	h.app = model.(tui.App)
	return cmd
}

// key builds a key message from a name like "enter" or from literal runes.
func key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// press sends keys and returns the command of the last one.
func (h *harness) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.update(key(k))
	}
	return cmd
}

// typeText sends text into the focused input. Input commands (cursor blink)
// are dropped.
func (h *harness) typeText(text string) {
	h.update(key(text))
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			h.run(sub)
		}
		return
	case tea.QuitMsg:
		return
	}
	h.run(h.update(msg))
}

// fire delivers the oldest captured timer of the same type as like.
func (h *harness) fire(like tea.Msg) {
	h.t.Helper()
	want := fmt.Sprintf("%T", like)
	for i, msg := range h.timers {
		if fmt.Sprintf("%T", msg) == want {
			h.timers = append(h.timers[:i], h.timers[i+1:]...)
			h.run(func() tea.Msg { return msg })
			return
		}
	}
	h.t.Fatalf("no %s timer scheduled", want)
}

func itemIDs(items []tui.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID()
	}
	return ids
}

func TestApp_InitialLoad(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(42))

	assert.Equal(t, len(h.app.Items()), 10)
	assert.Equal(t, h.app.Cursor(), 0)

	view := h.app.View()
	assert.Assert(t, is.Contains(view, "42 fellowships"))
	assert.Assert(t, is.Contains(view, "load more (10 of 42)"))
	assert.Assert(t, is.Contains(view, "Fellowship 00"))
}

func TestApp_Navigation_JK(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(3))

	h.press("j")
	assert.Equal(t, h.app.Cursor(), 1)

	h.press("k")
	assert.Equal(t, h.app.Cursor(), 0)

	// k at top should stay at 0 (no wrap)
	h.press("k")
	assert.Equal(t, h.app.Cursor(), 0)

	h.press("G")
	assert.Equal(t, h.app.Cursor(), 2)

	h.press("g", "g")
	assert.Equal(t, h.app.Cursor(), 0)
}

func TestApp_DownOnLastCard_LoadsNextPage(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(15))

	h.press("G")
	h.run(h.press("j"))

	assert.Equal(t, len(h.app.Items()), 15)
	calls := h.backend.CallsTo("/api/fellowships")
	assert.Equal(t, calls[len(calls)-1].Query.Get("page"), "2")

	// Past the end there is nothing more to fetch.
	h.press("G")
	assert.Assert(t, h.press("j") == nil)
	assert.Assert(t, is.Contains(h.app.View(), "end of results"))
}

func TestApp_StarsFilter_ResetsCursorAndRefetches(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(42))
	h.press("j", "j")

	h.run(h.press("+"))
	h.run(h.press("+"))

	assert.Equal(t, h.app.Cursor(), 0)
	assert.Equal(t, h.app.Controller().Filter().MinStars, 2)
	assert.Equal(t, h.app.Controller().Total(), 24)

	calls := h.backend.CallsTo("/api/fellowships")
	last := calls[len(calls)-1].Query
	assert.Equal(t, last.Get("min_stars"), "2")
	assert.Equal(t, last.Get("page"), "1")
}

func TestApp_StarsFilter_ClampedAtZero(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(5))
	before := len(h.backend.CallsTo("/api/fellowships"))

	assert.Assert(t, h.press("-") == nil)
	assert.Equal(t, len(h.backend.CallsTo("/api/fellowships")), before)
}

func TestApp_Toggles(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(30))

	h.run(h.press("F"))
	h.run(h.press("R"))
	h.run(h.press("p"))

	f := h.app.Controller().Filter()
	assert.Assert(t, f.FavoritesFirst)
	assert.Assert(t, f.ShowRemoved)
	assert.Equal(t, f.PageSize, 20)
	assert.Equal(t, len(h.app.Items()), 20)

	view := h.app.View()
	assert.Assert(t, is.Contains(view, "[fav first]"))
	assert.Assert(t, is.Contains(view, "[20/page]"))
}

func TestApp_Favorite(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(3))

	h.run(h.press("f"))

	item := h.app.Items()[0]
	assert.Assert(t, item.Favorited)
	assert.Equal(t, len(h.backend.CallsTo("/api/fellowships/0/favorite")), 1)
	assert.Assert(t, is.Contains(h.app.View(), "♥"))
}

func TestApp_RemoveThenUndo(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(3))
	h.press("j")

	h.run(h.press("d"))
	assert.Assert(t, !h.backend.Visible("1"))
	assert.Assert(t, h.app.Items()[1].Leaving)
	assert.Assert(t, is.Contains(h.app.View(), `Removed "Fellowship 01"  u: undo`))

	h.fire(listing.ExitFinishedMsg{})
	assert.DeepEqual(t, itemIDs(h.app.Items()), []string{"0", "2"})
	assert.Assert(t, is.Contains(h.app.View(), `Removed "Fellowship 01"`))

	h.run(h.press("u"))
	assert.Assert(t, h.backend.Visible("1"))
	assert.DeepEqual(t, itemIDs(h.app.Items()), []string{"0", "1", "2"})
	assert.Assert(t, h.app.Controller().Pending() == nil)
}

func TestApp_UndoWithoutPending(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(3))

	assert.Assert(t, h.press("u") == nil)
	assert.Equal(t, len(h.backend.CallsTo("/api/fellowships/0/undo")), 0)
}

func TestApp_LocalFilter(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(10))
	before := len(h.backend.CallsTo("/api/fellowships"))

	h.press("/")
	assert.Equal(t, h.app.Mode(), tui.ModeFilter)
	h.typeText("07")
	assert.DeepEqual(t, itemIDs(h.app.Items()), []string{"7"})

	h.press("enter")
	assert.Equal(t, h.app.Mode(), tui.ModeNormal)
	assert.Equal(t, h.app.FilterQuery(), "07")
	assert.Assert(t, is.Contains(h.app.View(), "filter: 07"))

	// The local filter never reaches the backend.
	assert.Equal(t, len(h.backend.CallsTo("/api/fellowships")), before)

	h.press("esc")
	assert.Equal(t, h.app.FilterQuery(), "")
	assert.Equal(t, len(h.app.Items()), 10)
}

func TestApp_KeywordSearch(t *testing.T) {
	fellowships := apitest.Fixtures(4)
	fellowships[2].Title = "Ocean Science Fellowship"
	h := newHarness(t, fellowships)

	h.press("s")
	assert.Equal(t, h.app.Mode(), tui.ModeKeywords)
	h.typeText("ocean")
	h.run(h.press("enter"))

	assert.Equal(t, h.app.Mode(), tui.ModeNormal)
	assert.Equal(t, h.app.Controller().Filter().Keywords, "ocean")
	assert.DeepEqual(t, itemIDs(h.app.Items()), []string{"2"})

	calls := h.backend.CallsTo("/api/fellowships")
	assert.Equal(t, calls[len(calls)-1].Query.Get("keywords"), "ocean")
}

func TestApp_KeywordSearch_EscCancels(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(4))
	before := len(h.backend.CallsTo("/api/fellowships"))

	h.press("s")
	h.typeText("ocean")
	h.press("esc")

	assert.Equal(t, h.app.Mode(), tui.ModeNormal)
	assert.Equal(t, h.app.Controller().Filter().Keywords, "")
	assert.Equal(t, len(h.backend.CallsTo("/api/fellowships")), before)
}

func TestApp_ScrapeDialog(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(2))

	h.press("S")
	assert.Equal(t, h.app.Mode(), tui.ModeScrape)
	assert.Assert(t, is.Contains(h.app.View(), "Clean up old data before scraping?"))

	h.press("n")
	assert.Assert(t, is.Contains(h.app.View(), "Browser:"))
	h.run(h.press("c"))

	assert.Equal(t, h.app.Mode(), tui.ModeNormal)
	calls := h.backend.CallsTo("/scrape")
	assert.Equal(t, len(calls), 1)
	assert.Equal(t, calls[0].Body["cleanup"], false)
	assert.Equal(t, calls[0].Body["browser"], "chrome")
	assert.Equal(t, h.app.Prefs().Scrape, model.ScrapeRequest{Cleanup: false, Browser: model.BrowserChrome})
	assert.Assert(t, is.Contains(h.app.View(), "Scraping process started successfully."))
}

func TestApp_APIKey(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(2))

	h.press("K")
	assert.Equal(t, h.app.Mode(), tui.ModeAPIKey)
	h.press("tab")
	h.typeText("secret")
	assert.Assert(t, !strings.Contains(h.app.View(), "secret"))
	h.run(h.press("enter"))

	assert.Equal(t, len(h.backend.CallsTo("/api/api_key/perplexity")), 1)
	assert.Assert(t, is.Contains(h.app.View(), "API key saved."))
}

func TestApp_APIKey_EmptyNotSent(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(2))

	h.press("K")
	h.run(h.press("enter"))

	assert.Equal(t, len(h.backend.CallsTo("/api/api_key")), 0)
	notice := h.app.Controller().Notice()
	assert.Assert(t, notice != nil)
	assert.Assert(t, notice.IsError)
	assert.Equal(t, notice.Message, "No API key entered.")
}

func TestApp_Refresh_ShowsNotice(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(2))

	h.run(h.press("r"))

	assert.Equal(t, len(h.backend.CallsTo("/api/refresh")), 1)
	assert.Assert(t, is.Contains(h.app.View(), "Data refreshed successfully!"))

	h.press("esc")
	assert.Assert(t, h.app.Controller().Notice() == nil)
}

func TestApp_OpenAndYankLink(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(2))
	h.press("j")

	h.run(h.press("o"))
	h.run(h.press("Y"))

	assert.DeepEqual(t, h.opened, []string{"https://fellowships.example/1"})
	assert.DeepEqual(t, h.copied, []string{"https://fellowships.example/1"})
	assert.Equal(t, h.app.Controller().Notice().Message, "Link copied.")
}

func TestApp_OpenLink_Missing(t *testing.T) {
	fellowships := apitest.Fixtures(1)
	fellowships[0].Link = ""
	h := newHarness(t, fellowships)

	h.run(h.press("o"))

	assert.Equal(t, len(h.opened), 0)
	assert.Assert(t, h.app.Controller().Notice().IsError)
}

func TestApp_Help(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(2))

	h.press("?")
	assert.Equal(t, h.app.Mode(), tui.ModeHelp)
	assert.Assert(t, is.Contains(h.app.View(), "min stars"))

	h.press("?")
	assert.Equal(t, h.app.Mode(), tui.ModeNormal)
}

func TestApp_Quit(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(2))

	cmd := h.press("q")
	assert.Assert(t, cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	assert.Assert(t, ok)
}

func TestApp_EmptyBackend_ShowsStatus(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, len(h.app.Items()), 0)
	assert.Assert(t, is.Contains(h.app.View(), "No data available."))
}

func TestApp_Prefs(t *testing.T) {
	h := newHarness(t, apitest.Fixtures(30))

	h.run(h.press("p"))
	h.run(h.press("F"))

	prefs := h.app.Prefs()
	assert.Equal(t, prefs.Filter.PageSize, 20)
	assert.Assert(t, prefs.Filter.FavoritesFirst)
	assert.Equal(t, prefs.Scrape.Browser, model.BrowserFirefox)
}
