package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move f:fav d:remove"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, gg, etc.)
	Edit   []Hint // Listing changes (f, d, u)
	Action []Hint // Action hints (Enter, Tab, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeFilter:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "keep"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModeKeywords:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "search"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeAPIKey:
		return HintSet{
			Action: []Hint{{Key: "Tab", Desc: "provider"}, {Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeScrape:
		return a.getScrapeHints()
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal (main listing).
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
		},
		Action: []Hint{
			{Key: "o", Desc: "open"},
			{Key: "s", Desc: "search"},
			{Key: "/", Desc: "filter"},
		},
		Edit: []Hint{
			{Key: "f", Desc: "fav"},
			{Key: "d", Desc: "remove"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
	if a.ctrl.HasMore() {
		hints.Nav = append(hints.Nav, Hint{Key: "n", Desc: "more"})
	}
	if a.ctrl.Pending() != nil {
		hints.Edit = append(hints.Edit, Hint{Key: "u", Desc: "undo"})
	}
	return hints
}

func (a App) getScrapeHints() HintSet {
	if a.scrape.Step == ScrapeAskCleanup {
		return HintSet{
			Action: []Hint{{Key: "y", Desc: "clean up"}, {Key: "n", Desc: "keep"}, {Key: "Enter", Desc: "default"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	}
	return HintSet{
		Action: []Hint{{Key: "f", Desc: "firefox"}, {Key: "c", Desc: "chrome"}, {Key: "Enter", Desc: "start"}},
		System: []Hint{{Key: "Esc", Desc: "cancel"}},
	}
}

// getGlobalHints returns hints for the backend actions available everywhere
// in normal mode.
func (a App) getGlobalHints() []Hint {
	return []Hint{
		{Key: "r", Desc: "refresh"},
		{Key: "P", Desc: "process"},
		{Key: "S", Desc: "scrape"},
		{Key: "K", Desc: "api key"},
	}
}
