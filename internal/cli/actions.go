package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/fellows/internal/listing"
	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/platform/config"
)

// ErrNoAPIKey is returned when an empty API key is given.
var ErrNoAPIKey = errors.New("no API key entered")

// actionError keeps the notice text as the message and the cause for errors.Is.
type actionError struct {
	text string
	err  error
}

func (e *actionError) Error() string { return e.text }
func (e *actionError) Unwrap() error { return e.err }

// runAction calls fn and reports the outcome with the same texts as the TUI
// banner.
func runAction(cmd *cobra.Command, rt *runtime, action listing.Action, fn func(ctx context.Context) error) error {
	if err := fn(cmd.Context()); err != nil {
		rt.logger().Error("action failed", slog.String("action", action.String()), slog.Any("error", err))
		return &actionError{text: listing.FailureText(action, err), err: err}
	}
	success(cmd.OutOrStdout(), "%s", strings.TrimSuffix(listing.SuccessText(action), " Reloading..."))
	return nil
}

func newRefreshCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Ask the backend to reload its data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := rt.client()
			if err != nil {
				return err
			}
			info(cmd.OutOrStdout(), "Refreshing data...")
			return runAction(cmd, rt, listing.ActionRefresh, client.Refresh)
		},
	}
}

func newProcessCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Run the rating pass over scraped data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := rt.client()
			if err != nil {
				return err
			}
			info(cmd.OutOrStdout(), "Processing data...")
			return runAction(cmd, rt, listing.ActionProcess, client.Process)
		},
	}
}

func newScrapeCmd(rt *runtime) *cobra.Command {
	var (
		cleanup bool
		browser string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Start a scrape run",
		Example: `  fellows scrape
  fellows scrape --cleanup=false --browser chrome`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := model.ParseBrowser(browser)
			if err != nil {
				return err
			}
			client, err := rt.client()
			if err != nil {
				return err
			}

			req := model.ScrapeRequest{Cleanup: cleanup, Browser: b}
			info(cmd.OutOrStdout(), "Starting scrape with %s...", b)
			return runAction(cmd, rt, listing.ActionScrape, func(ctx context.Context) error {
				return client.Scrape(ctx, req)
			})
		},
	}

	cmd.Flags().BoolVar(&cleanup, "cleanup", true, "delete old data before scraping")
	cmd.Flags().StringVar(&browser, "browser", string(model.BrowserFirefox), "browser to drive: firefox or chrome")
	return cmd
}

func newFiltersCmd(rt *runtime) *cobra.Command {
	var geminiKey string

	cmd := &cobra.Command{
		Use:   "filters <file.yaml>",
		Short: "Save scrape filters from a YAML file",
		Long: `Save scrape filters from a YAML file, for example:

  browsing: chrome
  categories:
    Citizenship Requirement: [Any]
  keywords:
    type: OR
    words: [ocean, climate]
  system_instructions: Prefer programs in Europe.

With --gemini-key the key is saved first; the filters are only sent when that
succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := config.LoadScrapeFilters(args[0])
			if err != nil {
				return err
			}
			client, err := rt.client()
			if err != nil {
				return err
			}

			if key := strings.TrimSpace(geminiKey); key != "" {
				err := runAction(cmd, rt, listing.ActionSaveAPIKey, func(ctx context.Context) error {
					return client.SaveAPIKey(ctx, model.ProviderGemini, key)
				})
				if err != nil {
					return err
				}
			}

			info(cmd.OutOrStdout(), "Saving filters...")
			return runAction(cmd, rt, listing.ActionSaveFilters, func(ctx context.Context) error {
				return client.SaveFilters(ctx, filters)
			})
		},
	}

	cmd.Flags().StringVar(&geminiKey, "gemini-key", "", "also save this Gemini API key")
	return cmd
}

func newAPIKeyCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "api-key <gemini|perplexity> [key]",
		Short: "Save a provider API key",
		Long: `Save a provider API key. Without the key argument it is read from the
first line of standard input, which keeps it out of shell history.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := model.ParseProvider(args[0])
			if err != nil {
				return err
			}

			var key string
			if len(args) == 2 {
				key = args[1]
			} else {
				key, err = readLine(cmd)
				if err != nil {
					return err
				}
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return ErrNoAPIKey
			}

			client, err := rt.client()
			if err != nil {
				return err
			}
			return runAction(cmd, rt, listing.ActionSaveAPIKey, func(ctx context.Context) error {
				return client.SaveAPIKey(ctx, provider, key)
			})
		},
	}
}

func readLine(cmd *cobra.Command) (string, error) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return "", nil
}
