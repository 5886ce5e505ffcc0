package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/fellows/internal/exporter"
)

func newListCmd(rt *runtime) *cobra.Command {
	var (
		ff     filterFlags
		page   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of fellowships",
		Example: `  fellows list --stars 3
  fellows list --keywords "ocean, climate" --page 2
  fellows list --favorites-first --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := rt.client()
			if err != nil {
				return err
			}

			filter := ff.filter(cmd, rt.config())
			filter.Page = max(page, 1)

			result, err := client.ListFellowships(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := exporter.ExportJSON(result.Fellowships)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			if len(result.Fellowships) == 0 {
				info(out, "No fellowships match the current filters.")
				return nil
			}
			if err := printTable(out, result.Fellowships); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nPage %d: %d of %s\n", filter.Page, len(result.Fellowships), plural(result.TotalCount, "fellowship"))
			if result.HasMore {
				fmt.Fprintf(out, "More results: fellows list --page %d\n", filter.Page+1)
			}
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	return cmd
}

func newStatusCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the backend has processed data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := rt.client()
			if err != nil {
				return err
			}
			conn, err := rt.httpClient()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status, err := client.Status(cmd.Context())
			if err != nil {
				if hcErr := conn.HealthCheck(cmd.Context()); hcErr != nil {
					warning(out, "%v", hcErr)
				}
				return err
			}

			info(out, "Backend %s at %s (circuit %s)", conn.Name(), conn.BaseURL(), conn.CircuitBreakerState())
			message := status.Message
			if status.DataAvailable {
				if message == "" {
					message = "Data is available."
				}
				success(out, "%s", message)
				return nil
			}
			if message == "" {
				message = "No processed data yet."
			}
			warning(out, "%s", message)
			return nil
		},
	}
}
