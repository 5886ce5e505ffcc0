package tui

import (
	"github.com/nikbrunner/fellows/internal/listing"
	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/search"
)

// Item is a card as displayed, with the title offsets to highlight when a
// local filter is active.
type Item struct {
	listing.Card
	Matches []int
}

// ID returns the fellowship ID.
func (i Item) ID() string {
	return i.Card.ID
}

// filterItems narrows cards by query. Without a query every card is kept in
// backend order; with one, the best matches come first.
func filterItems(cards []listing.Card, query string) []Item {
	if query == "" {
		items := make([]Item, len(cards))
		for i, c := range cards {
			items[i] = Item{Card: c}
		}
		return items
	}

	fellowships := make([]model.Fellowship, len(cards))
	for i, c := range cards {
		fellowships[i] = c.Fellowship
	}

	results := search.Fellowships(fellowships, query)
	items := make([]Item, len(results))
	for i, r := range results {
		items[i] = Item{
			Card:    cards[r.Index],
			Matches: search.TitleMatches(fellowships[r.Index], r),
		}
	}
	return items
}
