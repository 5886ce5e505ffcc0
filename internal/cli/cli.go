// Package cli builds the fellows command tree. Without a subcommand fellows
// opens the interactive listing; every backend endpoint also has a scriptable
// subcommand.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/fellows/internal/tui"
)

// Options are the process facilities the commands use. Zero fields take the
// real terminal, browser and clock.
type Options struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader

	// RunProgram runs a bubbletea model until it quits.
	RunProgram func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error)
	OpenURL    func(url string) error
	Now        func() time.Time
}

func (o *Options) applyDefaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.RunProgram == nil {
		o.RunProgram = func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
			return tea.NewProgram(m, opts...).Run()
		}
	}
	if o.OpenURL == nil {
		o.OpenURL = tui.OpenURL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	opts.applyDefaults()
	rt := &runtime{opts: opts}
	defer rt.close()

	root := newRootCmd(rt)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		pterm.Error.WithWriter(opts.Err).Println(err.Error())
		return 1
	}
	return 0
}

// interactive marks commands that take over the terminal. Their logs go to a
// file.
const interactive = "interactive"

func newRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "fellows",
		Short: "Browse and curate fellowship listings",
		Long: `fellows browses the fellowship listings served by the scraper backend.

Run without arguments to open the interactive listing. The subcommands call
the same endpoints for scripting.

Configuration is read from ~/.config/fellows/config.yaml and FELLOWS_*
environment variables.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Annotations:       map[string]string{interactive: "true"},
		PersistentPreRunE: rt.setup,
		RunE:              rt.runTUI,
	}

	root.SetOut(rt.opts.Out)
	root.SetErr(rt.opts.Err)
	root.SetIn(rt.opts.In)

	flags := root.PersistentFlags()
	flags.StringVar(&rt.configPath, "config", "", "config file (default ~/.config/fellows/config.yaml)")
	flags.StringVar(&rt.baseURL, "base-url", "", "backend base URL (overrides client.base_url)")
	flags.StringVar(&rt.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newListCmd(rt),
		newSearchCmd(rt),
		newStatusCmd(rt),
		newFavoriteCmd(rt),
		newRemoveCmd(rt),
		newUndoCmd(rt),
		newRefreshCmd(rt),
		newProcessCmd(rt),
		newScrapeCmd(rt),
		newFiltersCmd(rt),
		newAPIKeyCmd(rt),
		newExportCmd(rt),
	)
	return root
}
