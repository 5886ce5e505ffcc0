package exporter

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/render"
)

// Format is an export file format.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat accepts "html" or "json".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want html or json)", s)
	}
}

// DefaultExportPath returns the default export file path inside dir, or
// ~/Downloads when dir is empty.
// Format: fellowships-export-YYYY-MM-DD.<ext>
func DefaultExportPath(dir string, format Format, now time.Time) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Downloads")
	}
	filename := fmt.Sprintf("fellowships-export-%s.%s", now.Format("2006-01-02"), format)
	return filepath.Join(dir, filename), nil
}

// Export renders items in format.
func Export(items []model.Fellowship, format Format, now time.Time) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportJSON(items)
	case FormatHTML, "":
		return []byte(ExportHTML(items, now)), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// ExportJSON writes items as an indented JSON array.
func ExportJSON(items []model.Fellowship) ([]byte, error) {
	if items == nil {
		items = []model.Fellowship{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// ExportHTML renders a standalone HTML document with one card per fellowship.
func ExportHTML(items []model.Fellowship, now time.Time) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<title>Fellowships</title>\n")
	b.WriteString("<style>" + stylesheet + "</style>\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Fellowships</h1>\n<p class=\"meta\"><span class=\"total\">%d</span> fellowships, exported %s</p>\n",
		len(items), now.Format("2006-01-02 15:04"))

	if len(items) == 0 {
		b.WriteString("<p class=\"empty\">No fellowships match the current filters.</p>\n")
	}
	for _, f := range items {
		writeCard(&b, f)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeCard(b *strings.Builder, f model.Fellowship) {
	esc := html.EscapeString
	class := "card"
	if f.Favorited {
		class += " favorited"
	}

	fmt.Fprintf(b, "<article class=\"%s\" data-id=\"%s\">\n", class, esc(f.ID))
	fmt.Fprintf(b, "  <h3>%s</h3>\n", esc(render.Title(f)))
	fmt.Fprintf(b, "  <p class=\"where\">%s &bull; %s</p>\n", esc(render.Location(f)), esc(render.Continent(f)))
	fmt.Fprintf(b, "  <p class=\"deadline\">Apply by <strong>%s</strong></p>\n", esc(render.Deadline(f)))
	if f.Link != "" {
		fmt.Fprintf(b, "  <a class=\"link\" href=\"%s\" target=\"_blank\" rel=\"noopener noreferrer\">Open</a>\n", esc(f.Link))
	}
	fmt.Fprintf(b, "  <h4>Description</h4>\n  <p class=\"description\">%s</p>\n", esc(render.Description(f)))

	b.WriteString("  <h4>Key Features</h4>\n  <div class=\"subjects\">")
	if len(f.Subjects) == 0 {
		b.WriteString(render.NotAvailable)
	}
	for _, s := range f.Subjects {
		fmt.Fprintf(b, "<span class=\"subject\">%s</span>", esc(s))
	}
	b.WriteString("</div>\n")

	fmt.Fprintf(b, "  <dl>\n    <dt>Total</dt><dd class=\"compensation\">%s</dd>\n", esc(render.Compensation(f)))
	fmt.Fprintf(b, "    <dt>Length</dt><dd class=\"length\">%s</dd>\n", esc(render.Length(f)))
	b.WriteString("    <dt>Rating</dt><dd class=\"stars\">")
	for _, filled := range render.StarStates(f.InterestRating) {
		if filled {
			b.WriteString("<span class=\"star filled\">" + render.FilledStar + "</span>")
		} else {
			b.WriteString("<span class=\"star\">" + render.EmptyStar + "</span>")
		}
	}
	b.WriteString("</dd>\n  </dl>\n</article>\n")
}

const stylesheet = `body{font-family:system-ui,sans-serif;max-width:60rem;margin:2rem auto;color:#111827}` +
	`.card{border:1px solid #e5e7eb;border-radius:.75rem;padding:1.5rem;margin:1rem 0}` +
	`.card.favorited{border-color:#dc2626}.where,.meta{color:#6b7280}` +
	`.subject{background:#e0e7ff;color:#3730a3;border-radius:9999px;padding:.1rem .6rem;margin-right:.3rem;font-size:.8rem}` +
	`dl{display:grid;grid-template-columns:auto 1fr;gap:.25rem 1rem}.star{color:#d1d5db}.star.filled{color:#facc15}`
