package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/platform/config"
)

// filterFlags are the listing filter flags shared by list and export.
type filterFlags struct {
	minStars       int
	favoritesFirst bool
	showRemoved    bool
	keywords       string
	pageSize       int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.minStars, "stars", 0, "minimum interest rating, 0-4 (default from config)")
	flags.BoolVar(&f.favoritesFirst, "favorites-first", false, "sort favorites to the top")
	flags.BoolVar(&f.showRemoved, "show-removed", false, "include removed fellowships")
	flags.StringVar(&f.keywords, "keywords", "", "comma-separated keywords")
	flags.IntVar(&f.pageSize, "page-size", 0, "results per page (default from config)")
}

// filter builds the filter for page 1. Flags that were not given keep the
// configured defaults.
func (f *filterFlags) filter(cmd *cobra.Command, cfg *config.Config) model.FilterState {
	state := model.DefaultFilterState()
	state.MinStars = cfg.Listing.MinStars
	state.PageSize = cfg.Listing.PageSize

	flags := cmd.Flags()
	if flags.Changed("stars") {
		state.MinStars = f.minStars
	}
	if flags.Changed("page-size") && f.pageSize > 0 {
		state.PageSize = f.pageSize
	}
	state.FavoritesFirst = f.favoritesFirst
	state.ShowRemoved = f.showRemoved
	state.Keywords = strings.TrimSpace(f.keywords)

	return state.Apply(model.FilterPatch{})
}
