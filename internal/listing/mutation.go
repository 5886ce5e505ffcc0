package listing

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// ToggleFavorite flips the card's favorite flag and tells the backend.
// A failed save restores the previous flag.
func (c *Controller) ToggleFavorite(id string) tea.Cmd {
	i := c.indexOf(id)
	if i < 0 || c.cards[i].Leaving {
		return nil
	}
	c.cards[i].Favorited = !c.cards[i].Favorited
	favorited := c.cards[i].Favorited

	backend := c.backend
	return c.call(func(ctx context.Context) tea.Msg {
		err := backend.SetFavorite(ctx, id, favorited)
		return FavoriteSavedMsg{ID: id, Favorited: favorited, Err: err}
	})
}

func (c *Controller) applyFavorite(msg FavoriteSavedMsg) {
	if msg.Err == nil {
		return
	}
	c.logger.Error("favorite failed",
		slog.String("id", msg.ID),
		slog.Bool("favorited", msg.Favorited),
		slog.Any("error", msg.Err),
	)
	// Only undo our own toggle; a later toggle already superseded it.
	if i := c.indexOf(msg.ID); i >= 0 && c.cards[i].Favorited == msg.Favorited {
		c.cards[i].Favorited = !msg.Favorited
	}
}

// Remove starts the exit animation for id, tells the backend and opens the
// undo window. There is one undo slot: removing another card before the window
// closes makes the earlier removal permanent from the UI's point of view.
func (c *Controller) Remove(id string) tea.Cmd {
	i := c.indexOf(id)
	if i < 0 || c.cards[i].Leaving {
		return nil
	}
	c.cards[i].Leaving = true

	if c.pending != nil {
		c.logger.Debug("undo slot superseded",
			slog.String("previous", c.pending.ID),
			slog.String("id", id),
		)
	}
	c.removalSeq++
	seq := c.removalSeq
	c.pending = &PendingRemoval{ID: id, seq: seq}

	backend := c.backend
	session := c.session
	return tea.Batch(
		c.timer(c.exitAnimation, ExitFinishedMsg{ID: id}),
		c.call(func(ctx context.Context) tea.Msg {
			return RemovedMsg{ID: id, Err: backend.Remove(ctx, id), session: session}
		}),
		c.timer(c.undoWindow, UndoExpiredMsg{seq: seq}),
	)
}

func (c *Controller) finishExit(msg ExitFinishedMsg) {
	i := c.indexOf(msg.ID)
	if i < 0 || !c.cards[i].Leaving {
		return
	}
	c.cards = append(c.cards[:i], c.cards[i+1:]...)
}

func (c *Controller) applyRemoved(msg RemovedMsg) {
	if msg.Err != nil {
		c.logger.Error("remove failed", slog.String("id", msg.ID), slog.Any("error", msg.Err))
		return
	}
	if msg.session != c.session {
		c.logger.Debug("remove acknowledged after list restart", slog.String("id", msg.ID))
		return
	}
	if c.total > 0 {
		c.total--
	}
}

func (c *Controller) expireUndo(msg UndoExpiredMsg) {
	if c.pending == nil || c.pending.seq != msg.seq {
		return
	}
	c.pending = nil
}

// Undo restores the pending removal and reloads the list from page 1.
// It does nothing once the undo window has closed.
func (c *Controller) Undo() tea.Cmd {
	if c.pending == nil {
		return nil
	}
	id := c.pending.ID
	c.pending = nil

	backend := c.backend
	return c.call(func(ctx context.Context) tea.Msg {
		return UndoneMsg{ID: id, Err: backend.Undo(ctx, id)}
	})
}

func (c *Controller) applyUndone(msg UndoneMsg) tea.Cmd {
	if msg.Err != nil {
		c.logger.Error("undo failed", slog.String("id", msg.ID), slog.Any("error", msg.Err))
		return nil
	}
	return c.Reload()
}
