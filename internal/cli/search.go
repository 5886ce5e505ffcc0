package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/picker"
	"github.com/nikbrunner/fellows/internal/render"
)

// searchPageSize is how many matches the picker offers.
const searchPageSize = 50

func newSearchCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:         "search <keywords...>",
		Short:       "Keyword search, pick a result and open its link",
		Example:     `  fellows search ocean climate`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{interactive: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rt.client()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			filter := model.DefaultFilterState()
			filter.MinStars = model.MinStars
			filter.PageSize = searchPageSize
			filter.Keywords = strings.Join(args, ", ")

			page, err := client.ListFellowships(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(page.Fellowships) == 0 {
				info(out, "No fellowships found for '%s'", query)
				return nil
			}

			final, err := rt.opts.RunProgram(picker.New(page.Fellowships, query, page.TotalCount))
			if err != nil {
				return err
			}
			p, ok := final.(picker.Picker)
			if !ok {
				return nil
			}
			selected := p.Selected()
			if selected == nil {
				return nil
			}

			link := strings.TrimSpace(selected.Link)
			if link == "" {
				warning(out, "%s has no link.", render.Title(*selected))
				return nil
			}
			if err := rt.opts.OpenURL(link); err != nil {
				rt.logger().Warn("open link failed", slog.String("url", link), slog.Any("error", err))
				warning(out, "Could not open %s", link)
				return nil
			}
			success(out, "Opened %s", render.Title(*selected))
			return nil
		},
	}
}
