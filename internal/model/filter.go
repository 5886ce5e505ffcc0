package model

import (
	"net/url"
	"strconv"
	"strings"
)

// Star rating bounds and listing defaults.
const (
	MinStars        = 0
	MaxStars        = 4
	DefaultMinStars = 1
	DefaultPageSize = 10
)

// PageSizes are the page sizes offered for cycling in the UI.
var PageSizes = []int{10, 20, 50}

// FilterState holds the current filter, search and pagination parameters.
type FilterState struct {
	MinStars       int    `json:"minStars"`
	FavoritesFirst bool   `json:"favoritesFirst"`
	ShowRemoved    bool   `json:"showRemoved"`
	Keywords       string `json:"keywords"`
	Page           int    `json:"page"`
	PageSize       int    `json:"pageSize"`
}

// FilterPatch is a partial filter change. Nil fields are left untouched.
type FilterPatch struct {
	MinStars       *int
	FavoritesFirst *bool
	ShowRemoved    *bool
	Keywords       *string
	PageSize       *int
}

// DefaultFilterState returns the filter the backend applies when no
// parameters are given.
func DefaultFilterState() FilterState {
	return FilterState{
		MinStars: DefaultMinStars,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// ClampStars limits n to the star rating scale.
func ClampStars(n int) int {
	if n < MinStars {
		return MinStars
	}
	if n > MaxStars {
		return MaxStars
	}
	return n
}

// Apply merges patch into the filter and starts a new filter session at page 1.
func (f FilterState) Apply(patch FilterPatch) FilterState {
	next := f
	if patch.MinStars != nil {
		next.MinStars = *patch.MinStars
	}
	if patch.FavoritesFirst != nil {
		next.FavoritesFirst = *patch.FavoritesFirst
	}
	if patch.ShowRemoved != nil {
		next.ShowRemoved = *patch.ShowRemoved
	}
	if patch.Keywords != nil {
		next.Keywords = *patch.Keywords
	}
	if patch.PageSize != nil {
		next.PageSize = *patch.PageSize
	}
	if next.PageSize <= 0 {
		next.PageSize = DefaultPageSize
	}
	next.MinStars = ClampStars(next.MinStars)
	next.Page = 1
	return next
}

// Next returns the filter for the following page. Nothing else changes.
func (f FilterState) Next() FilterState {
	next := f
	next.Page = f.Page + 1
	return next
}

// KeywordList splits the comma separated keyword string the way the backend does.
func (f FilterState) KeywordList() []string {
	var words []string
	for _, w := range strings.Split(f.Keywords, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Query serializes the filter into /api/fellowships query parameters.
// Empty keywords are not sent.
func (f FilterState) Query() url.Values {
	page := f.Page
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(f.PageSize))
	q.Set("min_stars", strconv.Itoa(ClampStars(f.MinStars)))
	q.Set("favorites_first", strconv.FormatBool(f.FavoritesFirst))
	q.Set("show_removed", strconv.FormatBool(f.ShowRemoved))
	if kw := strings.TrimSpace(f.Keywords); kw != "" {
		q.Set("keywords", kw)
	}
	return q
}

// NextPageSize returns the page size following current in PageSizes.
func NextPageSize(current int) int {
	for i, size := range PageSizes {
		if size == current {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}
