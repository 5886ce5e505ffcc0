// Package render turns fellowship records into display strings. Everything here
// is a pure function of its input.
package render

import (
	"strings"

	"github.com/nikbrunner/fellows/internal/model"
)

// Star glyphs.
const (
	FilledStar = "★"
	EmptyStar  = "☆"
)

// TotalStars is the length of every rating row.
const TotalStars = model.MaxStars

// StarStates returns one entry per star, true when filled. Ratings outside
// the scale are clamped.
func StarStates(rating int) [TotalStars]bool {
	var states [TotalStars]bool
	filled := model.ClampStars(rating)
	for i := range states {
		states[i] = i < filled
	}
	return states
}

// RatingStars renders a rating as exactly TotalStars glyphs.
func RatingStars(rating int) string {
	var b strings.Builder
	for _, filled := range StarStates(rating) {
		if filled {
			b.WriteString(FilledStar)
		} else {
			b.WriteString(EmptyStar)
		}
	}
	return b.String()
}
