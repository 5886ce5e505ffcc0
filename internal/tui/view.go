package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/render"
	"github.com/nikbrunner/fellows/internal/tui/layout"
)

// renderView creates the complete listing view: header, card list, detail
// pane and help bar.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeKeywords, ModeAPIKey, ModeScrape:
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	panes := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	columns := a.renderListPane(panes.ListWidth, paneHeight)
	if panes.ShowDetail() {
		columns = lipgloss.JoinHorizontal(
			lipgloss.Top,
			columns,
			a.renderDetailPane(panes.DetailWidth, paneHeight),
		)
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the title line with the backend match count.
func (a App) renderHeader() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("fellows"))
	b.WriteString("  ")
	b.WriteString(fmt.Sprintf("%d fellowships", a.ctrl.Total()))

	if kw := a.ctrl.Filter().Keywords; kw != "" {
		b.WriteString(a.styles.Meta.Render("  keywords: " + kw))
	}
	if a.ctrl.Loading() {
		b.WriteString("  " + a.spinner.View())
	}

	return a.styles.Header.Render(b.String())
}

// renderListPane renders the card list with the load-more row or end marker.
func (a App) renderListPane(width, height int) string {
	var content strings.Builder
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	content.WriteString(a.styles.Title.Render("Listing") + "\n")
	used := 1

	if a.mode == ModeFilter {
		content.WriteString(a.search.FilterInput.View() + "\n")
		used++
	} else if a.search.FilterQuery != "" {
		content.WriteString(a.styles.Meta.Render("filter: "+a.search.FilterQuery) + "\n")
		used++
	}

	items := a.Items()
	if len(items) == 0 {
		content.WriteString(a.renderEmptyList(itemWidth) + "\n")
	} else {
		visible := layout.CalculateVisibleCards(height-used, a.layoutConfig.Pane)
		offset := layout.CalculateViewportOffset(a.cursor, len(items), visible)
		end := min(offset+visible, len(items))
		for i := offset; i < end; i++ {
			content.WriteString(a.renderCard(items[i], i == a.cursor, itemWidth) + "\n")
		}
	}

	if footer := a.renderListFooter(); footer != "" {
		content.WriteString(footer)
	}

	return a.styles.PaneActive.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) renderEmptyList(width int) string {
	var text string
	switch status := a.ctrl.Status(); {
	case a.ctrl.Loading() && !a.ctrl.Loaded():
		return a.spinner.View() + " Loading fellowships..."
	case status != nil && !status.DataAvailable:
		text = status.Message
		if text == "" {
			text = "No processed data yet. Scrape (S) and process (P) first."
		}
	case a.search.FilterQuery != "":
		text = "No loaded fellowships match the filter."
	default:
		text = "No fellowships match the current filters."
	}
	text, _ = layout.TruncateText(text, width, a.layoutConfig.Text)
	return a.styles.Empty.Render(text)
}

// renderListFooter returns the load-more affordance, the end marker, or the
// loading spinner for an appended page.
func (a App) renderListFooter() string {
	cards := len(a.ctrl.Cards())
	switch {
	case a.ctrl.Loading() && a.ctrl.Loaded():
		return a.styles.LoadMore.Render(a.spinner.View() + " Loading more...")
	case a.ctrl.HasMore():
		return a.styles.LoadMore.Render(fmt.Sprintf("n: load more (%d of %d)", cards, a.ctrl.Total()))
	case a.ctrl.AtEnd() && cards > 0:
		return a.styles.EndMarker.Render("end of results")
	}
	return ""
}

// renderCard renders a fellowship as three lines: rating and title, where,
// and deadline with compensation.
func (a App) renderCard(item Item, selected bool, maxWidth int) string {
	prefix := "  "
	if selected {
		prefix = "▸ "
	}

	stars := render.RatingStars(item.InterestRating)
	fav := ""
	if item.Favorited {
		fav = "♥ "
	}

	titleWidth := maxWidth - layout.VisibleLength(prefix+stars+" "+fav)
	title, cut := layout.TruncateText(render.Title(item.Fellowship), titleWidth, a.layoutConfig.Text)

	where, _ := layout.TruncateWithPrefix(render.Location(item.Fellowship)+" · "+render.Continent(item.Fellowship), maxWidth, "  ", a.layoutConfig.Text)
	due, _ := layout.TruncateWithPrefix("due "+render.Deadline(item.Fellowship)+" · "+render.Compensation(item.Fellowship), maxWidth, "  ", a.layoutConfig.Text)

	switch {
	case item.Leaving:
		lines := []string{prefix + stars + " " + fav + title, where, due}
		return a.styles.CardLeaving.Render(strings.Join(lines, "\n"))

	case selected:
		lines := []string{
			layout.PadRight(prefix+stars+" "+fav+title, maxWidth),
			layout.PadRight(where, maxWidth),
			layout.PadRight(due, maxWidth),
		}
		return a.styles.CardSelected.Render(strings.Join(lines, "\n"))
	}

	// Only the real title carries match offsets; the placeholder has none.
	if strings.TrimSpace(item.Title) != "" && len(item.Matches) > 0 {
		limit := len(title)
		if cut {
			limit -= len(a.layoutConfig.Text.Ellipsis)
		}
		title = a.highlight(title, item.Matches, limit)
	}

	first := prefix + a.styles.Stars.Render(stars) + " "
	if fav != "" {
		first += a.styles.Favorite.Render(fav)
	}
	first += title

	return a.styles.Card.Render(strings.Join([]string{
		first,
		a.styles.Meta.Render(where),
		a.styles.Meta.Render(due),
	}, "\n"))
}

// highlight styles the runes at byte offsets in matches, up to limit.
func (a App) highlight(s string, matches []int, limit int) string {
	set := make(map[int]bool, len(matches))
	for _, i := range matches {
		if i < limit {
			set[i] = true
		}
	}

	var b strings.Builder
	for i, r := range s {
		if set[i] {
			b.WriteString(a.styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderDetailPane renders the selected fellowship as markdown.
func (a App) renderDetailPane(width, height int) string {
	var body string
	if item, ok := a.Selected(); ok {
		md := renderMarkdown(render.DetailMarkdown(item.Fellowship), a.markdownStyle, layout.CalculateItemWidth(width, a.layoutConfig.Pane))
		lines := strings.Split(md, "\n")
		if len(lines) > height {
			lines = lines[:height]
		}
		body = strings.Join(lines, "\n")
	} else {
		body = a.styles.Empty.Render("(nothing selected)")
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(body)
}

func (a App) renderModal() string {
	var title, content strings.Builder

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(a.styles.PaneActive.GetBorderTopForeground()).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeKeywords:
		title.WriteString("Keyword Search\n\n")
		content.WriteString("Keywords (comma-separated):\n")
		content.WriteString(a.search.KeywordsInput.View())

	case ModeAPIKey:
		title.WriteString("API Key\n\n")
		content.WriteString("Provider: ")
		for i, p := range []model.APIKeyProvider{model.ProviderGemini, model.ProviderPerplexity} {
			if i > 0 {
				content.WriteString("  ")
			}
			content.WriteString(a.renderChoice(string(p), a.apiKey.Provider == p))
		}
		content.WriteString("\n\nKey:\n")
		content.WriteString(a.apiKey.Input.View())

	case ModeScrape:
		title.WriteString("Start Scrape\n\n")
		req := a.scrape.Request
		if a.scrape.Step == ScrapeAskCleanup {
			content.WriteString("Clean up old data before scraping?\n\n")
			content.WriteString(a.renderChoice("yes", req.Cleanup) + "  " + a.renderChoice("no", !req.Cleanup))
		} else {
			content.WriteString("Cleanup: " + yesNo(req.Cleanup) + "\n\n")
			content.WriteString("Browser:\n")
			content.WriteString(a.renderChoice(string(model.BrowserFirefox), req.Browser == model.BrowserFirefox) + "  " +
				a.renderChoice(string(model.BrowserChrome), req.Browser == model.BrowserChrome))
		}
	}

	content.WriteString("\n\n" + a.renderHintsInline(a.getContextualHints().All()))
	modalContent := a.styles.Title.Render(title.String()) + content.String()

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-3, // Leave room for help bar
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

func (a App) renderChoice(label string, on bool) string {
	if on {
		return a.styles.ToggleOn.Render("[" + label + "]")
	}
	return a.styles.Toggle.Render(" " + label + " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	lines = append(lines, a.renderMessageLine())

	// Line 2: Filter toggles (only in normal/filter modes)
	if a.mode == ModeNormal || a.mode == ModeFilter {
		lines = append(lines, a.renderStatusToggles())
	}

	// Line 3: Local (contextual) keyboard hints
	localHints := a.renderHints(a.getContextualHints())
	if localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 4: Global keyboard hints (only in normal mode - modals have their own flow)
	if a.mode == ModeNormal {
		globalHints := a.renderHintSlice(a.getGlobalHints())
		if globalHints != "" {
			lines = append(lines, a.styles.HintLabel.Render("Global ")+globalHints)
		}
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the notification banner and the undo prompt.
func (a App) renderMessageLine() string {
	var parts []string

	if n := a.ctrl.Notice(); n != nil {
		if n.IsError {
			parts = append(parts, a.styles.NoticeError.Render("✗ "+n.Message))
		} else {
			parts = append(parts, a.styles.Notice.Render("✓ "+n.Message))
		}
	}

	if p := a.ctrl.Pending(); p != nil {
		name := a.removedTitle
		if card, ok := a.ctrl.Card(p.ID); ok {
			name = render.Title(card.Fellowship)
		}
		parts = append(parts, a.styles.Undo.Render("Removed "+strconv.Quote(name)+"  u: undo"))
	}

	return strings.Join(parts, "   ")
}

// renderStatusToggles renders the filter toggle states.
func (a App) renderStatusToggles() string {
	f := a.ctrl.Filter()

	var status strings.Builder
	status.WriteString(a.styles.HintLabel.Render("Filter "))
	status.WriteString(a.renderToggle(fmt.Sprintf("★≥%d", f.MinStars), f.MinStars > 0))
	status.WriteString(" ")
	status.WriteString(a.renderToggle("fav first", f.FavoritesFirst))
	status.WriteString(" ")
	status.WriteString(a.renderToggle("removed", f.ShowRemoved))
	status.WriteString(" ")
	status.WriteString(a.styles.Toggle.Render(fmt.Sprintf("[%d/page]", f.PageSize)))
	return status.String()
}

func (a App) renderToggle(label string, on bool) string {
	if on {
		return a.styles.ToggleOn.Render("[" + label + "]")
	}
	return a.styles.Toggle.Render("[" + label + "]")
}

// renderHelpOverlay renders the help overlay.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k  move\n")
	left.WriteString("gg   top\n")
	left.WriteString("G    bottom\n")
	left.WriteString("n    load more\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("card") + "\n")
	left.WriteString("o    open link\n")
	left.WriteString("Y    yank link\n")
	left.WriteString("f    favorite\n")
	left.WriteString("d    remove\n")
	left.WriteString("u    undo remove\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("find") + "\n")
	left.WriteString("s    keywords\n")
	left.WriteString("/    filter loaded\n")
	left.WriteString("Esc  clear filter\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("filter") + "\n")
	right.WriteString("+/-  min stars\n")
	right.WriteString("F    favorites first\n")
	right.WriteString("R    show removed\n")
	right.WriteString("p    page size\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("backend") + "\n")
	right.WriteString("r    refresh data\n")
	right.WriteString("P    process data\n")
	right.WriteString("S    scrape\n")
	right.WriteString("K    api key\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	// Join columns
	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
