package search

import (
	"strings"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result is one fuzzy match against the loaded fellowships.
type Result struct {
	// Index into the slice passed to Fellowships.
	Index int
	// MatchedIndexes are byte offsets into Haystack(f).
	MatchedIndexes []int
	Score          int
}

// Haystack is the text a fellowship is matched on: title, then location,
// then subjects.
func Haystack(f model.Fellowship) string {
	parts := []string{f.Title}
	if f.Location != "" {
		parts = append(parts, f.Location)
	}
	if len(f.Subjects) > 0 {
		parts = append(parts, strings.Join(f.Subjects, " "))
	}
	return strings.Join(parts, " · ")
}

type haystacks []string

func (h haystacks) String(i int) string { return h[i] }
func (h haystacks) Len() int            { return len(h) }

// Fellowships matches query against the given fellowships and returns the
// hits, best first. An empty query matches nothing.
func Fellowships(items []model.Fellowship, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	source := make(haystacks, len(items))
	for i := range items {
		source[i] = Haystack(items[i])
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// TitleMatches keeps the matched offsets that fall inside the title, for
// highlighting.
func TitleMatches(f model.Fellowship, r Result) []int {
	var out []int
	for _, i := range r.MatchedIndexes {
		if i < len(f.Title) {
			out = append(out, i)
		}
	}
	return out
}
