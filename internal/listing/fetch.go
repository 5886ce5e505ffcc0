package listing

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/fellows/internal/model"
)

// SetFilter merges patch, clears the list and fetches page 1.
func (c *Controller) SetFilter(patch model.FilterPatch) tea.Cmd {
	c.filter = c.filter.Apply(patch)
	return c.restart()
}

// Reload clears the list and fetches page 1 with the current filter.
func (c *Controller) Reload() tea.Cmd {
	c.filter.Page = 1
	return c.restart()
}

func (c *Controller) restart() tea.Cmd {
	c.session++
	c.cards = nil
	c.hasMore = false
	c.loaded = false
	return c.loadPage(c.filter)
}

// NextPage fetches the page after the last loaded one and appends it.
// It does nothing while a request is in flight or when no more pages exist.
func (c *Controller) NextPage() tea.Cmd {
	if c.loading || !c.hasMore {
		return nil
	}
	return c.loadPage(c.filter.Next())
}

// loadPage issues one request for filter. Only the response to the latest
// request is applied.
func (c *Controller) loadPage(filter model.FilterState) tea.Cmd {
	c.gen++
	gen := c.gen
	c.loading = true

	backend := c.backend
	return c.call(func(ctx context.Context) tea.Msg {
		page, err := backend.ListFellowships(ctx, filter)
		return PageLoadedMsg{Gen: gen, Filter: filter, Page: page, Err: err}
	})
}

func (c *Controller) applyPage(msg PageLoadedMsg) {
	if msg.Gen != c.gen {
		c.logger.Debug("discarding stale page",
			slog.Uint64("gen", msg.Gen),
			slog.Uint64("latest", c.gen),
			slog.Int("page", msg.Filter.Page),
		)
		return
	}
	c.loading = false

	if msg.Err != nil {
		c.logger.Error("load page failed",
			slog.Int("page", msg.Filter.Page),
			slog.Any("error", msg.Err),
		)
		return
	}
	if msg.Page == nil {
		return
	}

	for _, f := range msg.Page.Fellowships {
		c.cards = append(c.cards, Card{Fellowship: f})
	}
	c.filter.Page = msg.Filter.Page
	c.total = msg.Page.TotalCount
	c.hasMore = msg.Page.HasMore
	c.loaded = true
}

func (c *Controller) checkStatus() tea.Cmd {
	backend := c.backend
	return c.call(func(ctx context.Context) tea.Msg {
		status, err := backend.Status(ctx)
		return StatusMsg{Status: status, Err: err}
	})
}

func (c *Controller) applyStatus(msg StatusMsg) {
	if msg.Err != nil {
		c.logger.Warn("status check failed", slog.Any("error", msg.Err))
		return
	}
	c.status = msg.Status
}
