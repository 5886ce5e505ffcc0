package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/fellows/internal/model"
)

// Notify shows message in the banner, replacing any current notice. The
// banner hides itself after the notice timeout.
func (c *Controller) Notify(message string, isError bool) tea.Cmd {
	c.noticeSeq++
	c.notice = &Notice{Message: message, IsError: isError, seq: c.noticeSeq}
	return c.timer(c.noticeTimeout, NoticeExpiredMsg{seq: c.noticeSeq})
}

// DismissNotice hides the banner now.
func (c *Controller) DismissNotice() {
	c.notice = nil
}

func (c *Controller) expireNotice(msg NoticeExpiredMsg) {
	if c.notice == nil || c.notice.seq != msg.seq {
		return
	}
	c.notice = nil
}

// Refresh asks the backend to reload its data, then reloads the list.
func (c *Controller) Refresh() tea.Cmd {
	backend := c.backend
	return tea.Batch(
		c.Notify("Refreshing data...", false),
		c.call(func(ctx context.Context) tea.Msg {
			return ActionDoneMsg{Action: ActionRefresh, Err: backend.Refresh(ctx)}
		}),
	)
}

// Process runs backend processing and reloads the list after the reload delay.
func (c *Controller) Process() tea.Cmd {
	backend := c.backend
	return tea.Batch(
		c.Notify("Processing data...", false),
		c.call(func(ctx context.Context) tea.Msg {
			return ActionDoneMsg{Action: ActionProcess, Err: backend.Process(ctx)}
		}),
	)
}

// Scrape starts a scrape run with the chosen options.
func (c *Controller) Scrape(req model.ScrapeRequest) tea.Cmd {
	if req.Browser == "" {
		req.Browser = model.BrowserFirefox
	}
	backend := c.backend
	return tea.Batch(
		c.Notify(fmt.Sprintf("Starting scrape with %s...", req.Browser), false),
		c.call(func(ctx context.Context) tea.Msg {
			return ActionDoneMsg{Action: ActionScrape, Err: backend.Scrape(ctx, req)}
		}),
	)
}

// SaveAPIKey stores a provider key. An empty key is not sent.
func (c *Controller) SaveAPIKey(provider model.APIKeyProvider, key string) tea.Cmd {
	key = strings.TrimSpace(key)
	if key == "" {
		return c.Notify("No API key entered.", true)
	}
	backend := c.backend
	return c.call(func(ctx context.Context) tea.Msg {
		return ActionDoneMsg{Action: ActionSaveAPIKey, Err: backend.SaveAPIKey(ctx, provider, key)}
	})
}

// SaveFilters stores the scrape filters. A non-empty geminiKey is saved
// first; if that fails the filters are not sent.
func (c *Controller) SaveFilters(filters model.ScrapeFilters, geminiKey string) tea.Cmd {
	geminiKey = strings.TrimSpace(geminiKey)
	backend := c.backend
	return tea.Batch(
		c.Notify("Saving filters...", false),
		c.call(func(ctx context.Context) tea.Msg {
			if geminiKey != "" {
				if err := backend.SaveAPIKey(ctx, model.ProviderGemini, geminiKey); err != nil {
					return ActionDoneMsg{Action: ActionSaveAPIKey, Err: err}
				}
			}
			return ActionDoneMsg{Action: ActionSaveFilters, Err: backend.SaveFilters(ctx, filters)}
		}),
	)
}

type actionText struct {
	success  string
	rejected string // shown when the backend gives no message
	network  string
}

var actionTexts = map[Action]actionText{
	ActionRefresh:     {"Data refreshed successfully!", "Failed to refresh data.", "Error refreshing data."},
	ActionProcess:     {"Data processed successfully! Reloading...", "An unknown error occurred.", "Error processing data."},
	ActionScrape:      {"Scraping process started successfully.", "Failed to start scraping.", "Error starting scrape."},
	ActionSaveAPIKey:  {"API key saved.", "Failed to save API key.", "Error saving API key."},
	ActionSaveFilters: {"Filters saved.", "Failed to save filters.", "Error saving filters."},
}

func (c *Controller) applyAction(msg ActionDoneMsg) tea.Cmd {
	text := actionTexts[msg.Action]

	if msg.Err != nil {
		c.logger.Error("action failed", slog.String("action", msg.Action.String()), slog.Any("error", msg.Err))
		return c.Notify(failureText(msg.Err, text), true)
	}

	notice := c.Notify(text.success, false)
	switch msg.Action {
	case ActionRefresh:
		return tea.Batch(notice, c.Reload())
	case ActionProcess:
		return tea.Batch(notice, c.timer(c.reloadDelay, ReloadMsg{}))
	default:
		return notice
	}
}

func failureText(err error, text actionText) string {
	if !errors.Is(err, model.ErrServer) {
		return text.network
	}
	if message := model.ServerMessage(err); message != "" {
		return message
	}
	return text.rejected
}

// SuccessText is the notice shown when action succeeds.
func SuccessText(action Action) string {
	return actionTexts[action].success
}

// FailureText is the notice shown when action fails with err.
func FailureText(action Action, err error) string {
	return failureText(err, actionTexts[action])
}
