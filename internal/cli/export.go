package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/fellows/internal/collect"
	"github.com/nikbrunner/fellows/internal/exporter"
)

func newExportCmd(rt *runtime) *cobra.Command {
	var (
		ff     filterFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export every matching fellowship to HTML or JSON",
		Long: `Export fetches all pages that match the filter flags and writes them to one
file. The default path is ~/Downloads/fellowships-export-YYYY-MM-DD.html.`,
		Example: `  fellows export
  fellows export --stars 3 --format json fellowships.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.config()

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			if !cmd.Flags().Changed("format") && strings.EqualFold(filepath.Ext(path), ".json") {
				format = string(exporter.FormatJSON)
			}
			f, err := exporter.ParseFormat(format)
			if err != nil {
				return err
			}

			now := rt.opts.Now()
			if path == "" {
				path, err = exporter.DefaultExportPath(cfg.Export.Dir, f, now)
				if err != nil {
					return fmt.Errorf("error getting export path: %w", err)
				}
			}

			client, err := rt.client()
			if err != nil {
				return err
			}

			bar := pb.New(0)
			bar.SetWriter(cmd.ErrOrStderr())
			bar.Start()
			result, fetchErr := collect.FetchAll(cmd.Context(), client, ff.filter(cmd, cfg), cfg.Export.Concurrency,
				func(completed, total int) {
					bar.SetTotal(int64(total))
					bar.SetCurrent(int64(completed))
				})
			bar.Finish()

			if result == nil {
				return fetchErr
			}
			out := cmd.OutOrStdout()
			if fetchErr != nil {
				warning(out, "Some pages could not be fetched, the export is incomplete: %v", fetchErr)
			}

			data, err := exporter.Export(result.Fellowships, f, now)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("error creating export directory: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("error writing export: %w", err)
			}

			success(out, "Exported %s to %s", plural(len(result.Fellowships), "fellowship"), path)
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(exporter.FormatHTML), "html or json")
	return cmd
}
