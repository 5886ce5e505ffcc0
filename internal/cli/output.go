package cli

import (
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/render"
)

func success(w io.Writer, format string, args ...any) {
	pterm.Success.WithWriter(w).Printfln(format, args...)
}

func info(w io.Writer, format string, args ...any) {
	pterm.Info.WithWriter(w).Printfln(format, args...)
}

func warning(w io.Writer, format string, args ...any) {
	pterm.Warning.WithWriter(w).Printfln(format, args...)
}

// printTable renders fellowships as a table, one row per card.
func printTable(w io.Writer, items []model.Fellowship) error {
	rows := pterm.TableData{{"ID", "Rating", "Fav", "Title", "Location", "Deadline"}}
	for _, f := range items {
		fav := ""
		if f.Favorited {
			fav = "♥"
		}
		rows = append(rows, []string{
			f.ID,
			render.RatingStars(f.InterestRating),
			fav,
			render.Title(f),
			render.Location(f),
			render.Deadline(f),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(rows).Render()
}

func plural(n int, word string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
