package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Header       lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardLeaving  lipgloss.Style
	Match        lipgloss.Style // fuzzy-matched characters in titles
	Stars        lipgloss.Style
	Favorite     lipgloss.Style
	Meta         lipgloss.Style
	LoadMore     lipgloss.Style
	EndMarker    lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	HintLabel    lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style
	Toggle       lipgloss.Style
	ToggleOn     lipgloss.Style
	Notice       lipgloss.Style
	NoticeError  lipgloss.Style
	Undo         lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Grayscale with a desaturated teal accent and amber stars.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}
	star := lipgloss.AdaptiveColor{Light: "#B07800", Dark: "#E0B040"}
	danger := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}
	success := lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Header: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		Card: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		CardSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		CardLeaving: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(subtle).
			Strikethrough(true),

		Match: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Stars: lipgloss.NewStyle().
			Foreground(star),

		Favorite: lipgloss.NewStyle().
			Foreground(danger),

		Meta: lipgloss.NewStyle().
			Foreground(subtle),

		LoadMore: lipgloss.NewStyle().
			Foreground(accent).
			PaddingLeft(1),

		EndMarker: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true).
			PaddingLeft(1),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(subtle).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Toggle: lipgloss.NewStyle().
			Foreground(subtle),

		ToggleOn: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),

		NoticeError: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),

		Undo: lipgloss.NewStyle().
			Foreground(accent),
	}
}
