package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/render"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeFilter:
		return a.handleFilterMode(msg)
	case ModeKeywords:
		return a.handleKeywordsMode(msg)
	case ModeAPIKey:
		return a.handleAPIKeyMode(msg)
	case ModeScrape:
		return a.handleScrapeMode(msg)
	case ModeHelp:
		return a.handleHelpMode(msg)
	default:
		return a.handleNormalMode(msg)
	}
}

func (a App) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// gg needs two presses; any other key breaks the sequence.
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			a.cursor = 0
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		return a.moveDown()

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		a.cursor = max(len(a.Items())-1, 0)
		return a, nil

	case key.Matches(msg, a.keys.LoadMore):
		return a, a.ctrl.NextPage()

	case key.Matches(msg, a.keys.Open):
		return a, a.linkAction(linkOpen, a.openURL)

	case key.Matches(msg, a.keys.YankLink):
		return a, a.linkAction(linkCopy, a.copyText)

	case key.Matches(msg, a.keys.Favorite):
		if item, ok := a.Selected(); ok {
			return a, a.ctrl.ToggleFavorite(item.ID())
		}
		return a, nil

	case key.Matches(msg, a.keys.Remove):
		if item, ok := a.Selected(); ok && !item.Leaving {
			a.removedTitle = render.Title(item.Fellowship)
			return a, a.ctrl.Remove(item.ID())
		}
		return a, nil

	case key.Matches(msg, a.keys.Undo):
		if a.ctrl.Pending() == nil {
			return a, nil
		}
		return a, a.ctrl.Undo()

	case key.Matches(msg, a.keys.Keywords):
		a.mode = ModeKeywords
		a.search.KeywordsInput.SetValue(a.ctrl.Filter().Keywords)
		a.search.KeywordsInput.CursorEnd()
		return a, a.search.KeywordsInput.Focus()

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.search.FilterInput.SetValue(a.search.FilterQuery)
		a.search.FilterInput.CursorEnd()
		return a, a.search.FilterInput.Focus()

	case key.Matches(msg, a.keys.StarsUp):
		return a.setMinStars(a.ctrl.Filter().MinStars + 1)

	case key.Matches(msg, a.keys.StarsDown):
		return a.setMinStars(a.ctrl.Filter().MinStars - 1)

	case key.Matches(msg, a.keys.FavoritesFirst):
		on := !a.ctrl.Filter().FavoritesFirst
		return a.applyFilter(model.FilterPatch{FavoritesFirst: &on})

	case key.Matches(msg, a.keys.ShowRemoved):
		on := !a.ctrl.Filter().ShowRemoved
		return a.applyFilter(model.FilterPatch{ShowRemoved: &on})

	case key.Matches(msg, a.keys.PageSize):
		size := model.NextPageSize(a.ctrl.Filter().PageSize)
		return a.applyFilter(model.FilterPatch{PageSize: &size})

	case key.Matches(msg, a.keys.Refresh):
		return a, a.ctrl.Refresh()

	case key.Matches(msg, a.keys.Process):
		return a, a.ctrl.Process()

	case key.Matches(msg, a.keys.Scrape):
		a.mode = ModeScrape
		a.scrape.Start(a.lastScrape)
		return a, nil

	case key.Matches(msg, a.keys.APIKey):
		a.mode = ModeAPIKey
		a.apiKey.Reset()
		return a, a.apiKey.Input.Focus()

	case key.Matches(msg, a.keys.Dismiss):
		if a.search.FilterQuery != "" {
			a.search.ResetFilter()
			a.cursor = 0
			return a, nil
		}
		a.ctrl.DismissNotice()
		return a, nil

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil
	}

	return a, nil
}

// moveDown moves the cursor and asks for the next page when it is already on
// the last card. The local filter only narrows loaded cards, so it never
// triggers a fetch.
func (a App) moveDown() (tea.Model, tea.Cmd) {
	n := len(a.Items())
	if a.cursor < n-1 {
		a.cursor++
		return a, nil
	}
	if a.search.FilterQuery == "" && a.ctrl.HasMore() {
		return a, a.ctrl.NextPage()
	}
	return a, nil
}

func (a App) setMinStars(n int) (tea.Model, tea.Cmd) {
	n = model.ClampStars(n)
	if n == a.ctrl.Filter().MinStars {
		return a, nil
	}
	return a.applyFilter(model.FilterPatch{MinStars: &n})
}

func (a App) applyFilter(patch model.FilterPatch) (tea.Model, tea.Cmd) {
	a.cursor = 0
	return a, a.ctrl.SetFilter(patch)
}

func (a App) linkAction(action string, fn func(string) error) tea.Cmd {
	item, ok := a.Selected()
	if !ok {
		return nil
	}
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return a.ctrl.Notify("This fellowship has no link.", true)
	}
	a.logger.Debug("link action", slog.String("action", action), slog.String("id", item.ID()))
	return linkCmd(action, fn, link)
}

func (a App) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.search.FilterInput.Blur()
		a.search.ResetFilter()
		a.cursor = 0
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.search.FilterInput.Blur()
		a.search.FilterQuery = strings.TrimSpace(a.search.FilterInput.Value())
		return a, nil
	}

	var cmd tea.Cmd
	a.search.FilterInput, cmd = a.search.FilterInput.Update(msg)
	a.search.FilterQuery = strings.TrimSpace(a.search.FilterInput.Value())
	a.cursor = 0
	return a, cmd
}

func (a App) handleKeywordsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.search.KeywordsInput.Blur()
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.search.KeywordsInput.Blur()
		keywords := strings.TrimSpace(a.search.KeywordsInput.Value())
		if keywords == a.ctrl.Filter().Keywords {
			return a, nil
		}
		return a.applyFilter(model.FilterPatch{Keywords: &keywords})
	}

	var cmd tea.Cmd
	a.search.KeywordsInput, cmd = a.search.KeywordsInput.Update(msg)
	return a, cmd
}

func (a App) handleAPIKeyMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.apiKey.Input.Blur()
		a.apiKey.Reset()
		return a, nil

	case tea.KeyTab, tea.KeyShiftTab:
		a.apiKey.ToggleProvider()
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.apiKey.Input.Blur()
		cmd := a.ctrl.SaveAPIKey(a.apiKey.Provider, a.apiKey.Input.Value())
		a.apiKey.Reset()
		return a, cmd
	}

	var cmd tea.Cmd
	a.apiKey.Input, cmd = a.apiKey.Input.Update(msg)
	return a, cmd
}

func (a App) handleScrapeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC {
		a.mode = ModeNormal
		return a, nil
	}

	if a.scrape.Step == ScrapeAskCleanup {
		switch {
		case msg.Type == tea.KeyEnter:
		case msg.String() == "y":
			a.scrape.Request.Cleanup = true
		case msg.String() == "n":
			a.scrape.Request.Cleanup = false
		default:
			return a, nil
		}
		a.scrape.Step = ScrapeAskBrowser
		return a, nil
	}

	switch {
	case msg.Type == tea.KeyEnter:
	case msg.Type == tea.KeyTab:
		if a.scrape.Request.Browser == model.BrowserFirefox {
			a.scrape.Request.Browser = model.BrowserChrome
		} else {
			a.scrape.Request.Browser = model.BrowserFirefox
		}
		return a, nil
	case msg.String() == "f":
		a.scrape.Request.Browser = model.BrowserFirefox
	case msg.String() == "c":
		a.scrape.Request.Browser = model.BrowserChrome
	default:
		return a, nil
	}

	a.mode = ModeNormal
	a.lastScrape = a.scrape.Request
	return a, a.ctrl.Scrape(a.scrape.Request)
}

func (a App) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Dismiss), msg.String() == "q":
		a.mode = ModeNormal
	}
	return a, nil
}
