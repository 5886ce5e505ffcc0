package layout

// PaneLayout holds calculated pane dimensions.
type PaneLayout struct {
	ListWidth   int
	DetailWidth int // 0 when the detail pane is hidden
}

// ShowDetail reports whether the detail pane fits.
func (p PaneLayout) ShowDetail() bool {
	return p.DetailWidth > 0
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidths splits the terminal between card list and detail pane.
// Narrow terminals get the list only.
func CalculatePaneWidths(terminalWidth int, cfg PaneConfig) PaneLayout {
	if terminalWidth < cfg.SplitMinWidth {
		return PaneLayout{ListWidth: max(terminalWidth-cfg.BorderWidth, cfg.MinListWidth)}
	}

	usable := terminalWidth - 2*cfg.BorderWidth
	list := max(usable*cfg.ListWidthPercent/100, cfg.MinListWidth)
	return PaneLayout{
		ListWidth:   list,
		DetailWidth: max(usable-list, 1),
	}
}

// CalculateItemWidth computes the width available for card content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return max(paneWidth-cfg.ContentPadding, 1)
}

// CalculateVisibleCards computes how many cards fit in a pane.
func CalculateVisibleCards(paneHeight int, cfg PaneConfig) int {
	lines := paneHeight - cfg.FooterLines
	if cfg.CardLines <= 0 || lines < cfg.CardLines {
		return 1
	}
	return lines / cfg.CardLines
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
