package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/render"
	"github.com/nikbrunner/fellows/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)
)

// Picker is a simple TUI for choosing one fellowship from a result set.
type Picker struct {
	items     []model.Fellowship
	query     string
	total     int
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over items. total is the backend's match count, which
// can exceed len(items) when only the first page was fetched.
func New(items []model.Fellowship, query string, total int) Picker {
	return Picker{
		items:  items,
		query:  query,
		total:  max(total, len(items)),
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit
		case tea.KeyEnter:
			if len(p.items) > 0 {
				p.selected = true
			} else {
				p.cancelled = true
			}
			return p, tea.Quit
		case tea.KeyDown:
			p.move(1)
			return p, nil
		case tea.KeyUp:
			p.move(-1)
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.move(1)
			case "k":
				p.move(-1)
			case "g":
				p.cursor = 0
			case "G":
				p.cursor = max(len(p.items)-1, 0)
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) move(delta int) {
	p.cursor = min(max(p.cursor+delta, 0), max(len(p.items)-1, 0))
}

// visibleRows is how many two-line entries fit between header and footer.
func (p Picker) visibleRows() int {
	return max((p.height-5)/2, 1)
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Search: %s (%d results)", p.query, p.total)
	if p.total > len(p.items) {
		header = fmt.Sprintf("Search: %s (showing %d of %d)", p.query, len(p.items), p.total)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	if len(p.items) == 0 {
		b.WriteString(normalStyle.Render("  No fellowships match."))
		b.WriteString("\n")
	}

	start, end := layout.CalculateVisibleListItems(p.visibleRows(), p.cursor, len(p.items))
	for i := start; i < end; i++ {
		f := p.items[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		stars := starStyle.Render(render.RatingStars(f.InterestRating))
		title := style.Render(render.Title(f))
		fmt.Fprintf(&b, "%s%s %s\n", cursor, stars, title)
		fmt.Fprintf(&b, "   %s\n", linkStyle.Render(render.Location(f)+" · "+f.Link))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// Selected returns the chosen fellowship, or nil if cancelled.
func (p Picker) Selected() *model.Fellowship {
	if p.cancelled || !p.selected || p.cursor >= len(p.items) {
		return nil
	}
	return &p.items[p.cursor]
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
