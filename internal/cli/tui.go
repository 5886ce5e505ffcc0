package cli

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/fellows/internal/listing"
	"github.com/nikbrunner/fellows/internal/storage"
	"github.com/nikbrunner/fellows/internal/tui"
)

// runTUI runs the full interactive listing. The filter and scrape answers of
// the last session are restored and saved again on exit.
func (rt *runtime) runTUI(cmd *cobra.Command, _ []string) error {
	cfg := rt.config()
	logger := rt.logger()

	client, err := rt.client()
	if err != nil {
		return err
	}
	store, err := rt.prefs()
	if err != nil {
		return err
	}

	prefs, err := store.Load()
	if err != nil {
		logger.Warn("loading preferences failed, using defaults", slog.Any("error", err))
		defaults := storage.DefaultPrefs()
		defaults.Filter.MinStars = cfg.Listing.MinStars
		defaults.Filter.PageSize = cfg.Listing.PageSize
		prefs = &defaults
	}

	ctrl := listing.New(client, listing.Options{
		Filter:         prefs.Filter,
		UndoWindow:     cfg.Listing.UndoWindow,
		NoticeTimeout:  cfg.Listing.NoticeTimeout,
		ExitAnimation:  cfg.Listing.ExitAnimation,
		ReloadDelay:    cfg.Listing.ReloadDelay,
		RequestTimeout: cfg.Listing.RequestTimeout,
		Logger:         logger,
	})

	app := tui.NewApp(tui.AppParams{
		Controller: ctrl,
		Logger:     logger,
		LastScrape: prefs.Scrape,
		OpenURL:    rt.opts.OpenURL,
	})

	finalModel, err := rt.opts.RunProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if err != nil {
		return fmt.Errorf("error running app: %w", err)
	}

	finalApp, ok := finalModel.(tui.App)
	if !ok {
		return nil
	}
	saved := finalApp.Prefs()
	if err := store.Save(&saved); err != nil {
		return fmt.Errorf("error saving preferences: %w", err)
	}
	logger.Info("session ended", slog.Int("min_stars", saved.Filter.MinStars), slog.Int("page_size", saved.Filter.PageSize))
	return nil
}
