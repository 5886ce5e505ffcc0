package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Top            key.Binding
	Bottom         key.Binding
	LoadMore       key.Binding
	Open           key.Binding
	YankLink       key.Binding
	Favorite       key.Binding
	Remove         key.Binding
	Undo           key.Binding
	Keywords       key.Binding
	Filter         key.Binding
	StarsUp        key.Binding
	StarsDown      key.Binding
	FavoritesFirst key.Binding
	ShowRemoved    key.Binding
	PageSize       key.Binding
	Refresh        key.Binding
	Scrape         key.Binding
	Process        key.Binding
	APIKey         key.Binding
	Dismiss        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "load more"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "open link"),
		),
		YankLink: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "yank link"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo remove"),
		),
		Keywords: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "keyword search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		StarsUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more stars"),
		),
		StarsDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer stars"),
		),
		FavoritesFirst: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorites first"),
		),
		ShowRemoved: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "show removed"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "page size"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh data"),
		),
		Scrape: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "scrape"),
		),
		Process: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "process data"),
		),
		APIKey: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "api key"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
