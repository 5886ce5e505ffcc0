package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nikbrunner/fellows/internal/model"
)

// Placeholders for missing values.
const (
	NoTitle       = "No Title Provided"
	NotAvailable  = "N/A"
	NoDescription = "No description available."
)

func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NotAvailable
	}
	return s
}

func Title(f model.Fellowship) string {
	if t := strings.TrimSpace(f.Title); t != "" {
		return t
	}
	return NoTitle
}

func Location(f model.Fellowship) string  { return orNA(f.Location) }
func Continent(f model.Fellowship) string { return orNA(f.Continent) }
func Deadline(f model.Fellowship) string  { return orNA(f.Deadline) }

// Compensation groups digits of numeric amounts; free text is kept as is.
func Compensation(f model.Fellowship) string {
	raw := strings.TrimSpace(f.TotalCompensation)
	if raw == "" {
		return NotAvailable
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return humanize.CommafWithDigits(n, 2)
}

// Length renders the program length in years.
func Length(f model.Fellowship) string {
	raw := strings.TrimSpace(f.LengthYears)
	if raw == "" {
		return NotAvailable
	}
	if raw == "1" {
		return "1 year"
	}
	return raw + " years"
}

func Subjects(f model.Fellowship) string {
	if len(f.Subjects) == 0 {
		return NotAvailable
	}
	return strings.Join(f.Subjects, ", ")
}

// Description returns the description as plain text.
func Description(f model.Fellowship) string {
	if text := PlainText(f.Description); text != "" {
		return text
	}
	return NoDescription
}

// Summary is the one-line representation used in lists and tables.
func Summary(f model.Fellowship) string {
	return fmt.Sprintf("%s  %s · %s · due %s", RatingStars(f.InterestRating), Title(f), Location(f), Deadline(f))
}

// DetailMarkdown renders a fellowship as a markdown document.
func DetailMarkdown(f model.Fellowship) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(Title(f)))
	if f.Favorited {
		b.WriteString("**Favorite**  ")
	}
	fmt.Fprintf(&b, "%s\n\n", RatingStars(f.InterestRating))
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Location | %s |\n", escapeMarkdown(Location(f)))
	fmt.Fprintf(&b, "| Continent | %s |\n", escapeMarkdown(Continent(f)))
	fmt.Fprintf(&b, "| Deadline | %s |\n", escapeMarkdown(Deadline(f)))
	fmt.Fprintf(&b, "| Compensation | %s |\n", escapeMarkdown(Compensation(f)))
	fmt.Fprintf(&b, "| Length | %s |\n", escapeMarkdown(Length(f)))
	fmt.Fprintf(&b, "| Subjects | %s |\n\n", escapeMarkdown(Subjects(f)))
	b.WriteString(escapeMarkdown(Description(f)))
	b.WriteString("\n")
	if link := strings.TrimSpace(f.Link); link != "" {
		fmt.Fprintf(&b, "\n<%s>\n", link)
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "#", `\#`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
