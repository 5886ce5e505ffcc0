package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + banner (1) + pane borders (2) + help bar (3) = 8
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// ListWidthPercent is the share of the width given to the card list when
	// the detail pane is shown.
	ListWidthPercent int

	// SplitMinWidth is the narrowest terminal that still shows the detail pane.
	SplitMinWidth int

	// MinListWidth is the minimum list pane width.
	MinListWidth int

	// BorderWidth is the horizontal space one pane spends on border and padding.
	BorderWidth int

	// ContentPadding is subtracted from pane width for card rendering.
	ContentPadding int

	// CardLines is the height of one card in the list.
	CardLines int

	// FooterLines is reserved under the cards for the load-more row.
	FooterLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	KeywordsCharLimit int
	FilterCharLimit   int
	APIKeyCharLimit   int

	StandardWidth int // keyword and API key inputs
	FilterWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  8,
			MinHeight:        6,
			ListWidthPercent: 45,
			SplitMinWidth:    90,
			MinListWidth:     30,
			BorderWidth:      4,
			ContentPadding:   4,
			CardLines:        3,
			FooterLines:      1,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             50,
			MaxWidth:             80,
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			KeywordsCharLimit: 200,
			FilterCharLimit:   50,
			APIKeyCharLimit:   200,
			StandardWidth:     40,
			FilterWidth:       30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
