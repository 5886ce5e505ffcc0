package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/fellows/internal/api"
	"github.com/nikbrunner/fellows/internal/platform/config"
	"github.com/nikbrunner/fellows/internal/platform/httpclient"
	"github.com/nikbrunner/fellows/internal/platform/logging"
	"github.com/nikbrunner/fellows/internal/platform/telemetry"
	"github.com/nikbrunner/fellows/internal/storage"
)

const otelShutdownTimeout = 5 * time.Second

// runtime holds the flags shared by all commands and the dependency graph
// built for the command being run.
type runtime struct {
	opts Options

	configPath string
	baseURL    string
	logLevel   string

	injector *do.RootScope
	closers  []func()
}

// setup loads configuration and wires the dependency graph. It runs before
// every command.
func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rt.configPath)
	if err != nil {
		return err
	}
	if u := strings.TrimSpace(rt.baseURL); u != "" {
		cfg.Client.BaseURL = strings.TrimRight(u, "/")
	}
	if rt.logLevel != "" {
		cfg.Log.Level = rt.logLevel
	}

	logOut, err := rt.logWriter(cfg, cmd.Annotations[interactive] == "true")
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)

	if cfg.Telemetry.Enabled {
		tp, err := telemetry.InitTracer(cmd.Context(), cfg.Telemetry.ServiceName, cfg.Telemetry.Exporter, cfg.Telemetry.Endpoint, logOut)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		rt.closers = append(rt.closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				logger.Error("telemetry shutdown error", slog.Any("error", err))
			}
		})
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	registerDependencies(injector)
	rt.injector = injector

	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	logger.Debug("command started",
		slog.String("command", cmd.CommandPath()),
		slog.String("base_url", cfg.Client.BaseURL),
	)
	return nil
}

// logWriter picks the log destination. Interactive commands own the terminal,
// so they log to a file even when none is configured.
func (rt *runtime) logWriter(cfg *config.Config, interactive bool) (io.Writer, error) {
	path := cfg.Log.File
	if path == "" && interactive {
		path = filepath.Join(config.DefaultDir(), "fellows.log")
	}
	if path == "" {
		return rt.opts.Err, nil
	}

	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, func() { _ = f.Close() })
	return f, nil
}

func registerDependencies(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return httpclient.New(&cfg.Client, "fellows-backend", logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*api.Client, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return api.New(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (storage.Storage, error) {
		cfg := do.MustInvoke[*config.Config](i)
		defaults := storage.DefaultPrefs()
		defaults.Filter.MinStars = cfg.Listing.MinStars
		defaults.Filter.PageSize = cfg.Listing.PageSize
		return storage.NewJSONStorage(cfg.Listing.PrefsFile).WithDefaults(defaults), nil
	})
}

// close releases what setup opened, last opened first. Safe to call twice.
func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

func (rt *runtime) config() *config.Config {
	return do.MustInvoke[*config.Config](rt.injector)
}

func (rt *runtime) logger() *slog.Logger {
	return do.MustInvoke[*slog.Logger](rt.injector)
}

func (rt *runtime) httpClient() (*httpclient.Client, error) {
	return do.Invoke[*httpclient.Client](rt.injector)
}

func (rt *runtime) client() (*api.Client, error) {
	return do.Invoke[*api.Client](rt.injector)
}

func (rt *runtime) prefs() (storage.Storage, error) {
	return do.Invoke[storage.Storage](rt.injector)
}
