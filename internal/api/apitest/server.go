// Package apitest provides an in-memory fellowship backend for tests. It
// filters, sorts and paginates the way the Flask backend does and records every
// call it receives.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/nikbrunner/fellows/internal/model"
)

// Call is one request received by the server.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

type record struct {
	fellowship model.Fellowship
	index      int
	show       bool
}

// Server is an http.Handler backed by an in-memory data set.
type Server struct {
	mu            sync.Mutex
	records       []record
	calls         []Call
	failures      map[string]int
	dataAvailable bool
	router        chi.Router
}

// New returns a server over fellowships. Ids are replaced by row indexes.
func New(fellowships []model.Fellowship) *Server {
	s := &Server{failures: map[string]int{}, dataAvailable: len(fellowships) > 0}
	for i, f := range fellowships {
		f.ID = strconv.Itoa(i)
		s.records = append(s.records, record{fellowship: f, index: i, show: true})
	}

	r := chi.NewRouter()
	r.Use(s.recordCall)
	r.Get("/api/fellowships", s.handleList)
	r.Post("/api/fellowships/{id}/favorite", s.handleFavorite)
	r.Post("/api/fellowships/{id}/remove", s.handleShow(false))
	r.Post("/api/fellowships/{id}/undo", s.handleShow(true))
	r.Post("/api/refresh", s.handleAck("Data refreshed successfully."))
	r.Post("/process", s.handleAck("Processing started."))
	r.Post("/scrape", s.handleAck("Scraping process started."))
	r.Post("/api/filters", s.handleAck("Filters saved."))
	r.Post("/api/api_key", s.handleAck("API key saved."))
	r.Post("/api/api_key/perplexity", s.handleAck("API key saved."))
	r.Get("/api/status", s.handleStatus)
	s.router = r
	return s
}

// Start serves New(fellowships) on a local port until the test ends.
func Start(t testing.TB, fellowships []model.Fellowship) (*Server, *httptest.Server) {
	t.Helper()
	s := New(fellowships)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Fail makes the next request to path answer with status and message.
// A 200 status produces {"success": false}.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Calls returns the calls received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the calls whose path equals path.
func (s *Server) CallsTo(path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Visible reports whether the fellowship with id is shown.
func (s *Server) Visible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.fellowship.ID == id {
			return rec.show
		}
	}
	return false
}

func (s *Server) recordCall(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
		if r.Body != nil {
			data, _ := io.ReadAll(r.Body)
			if len(data) > 0 {
				_ = json.Unmarshal(data, &call.Body)
			}
			r.Body = io.NopCloser(bytes.NewReader(data))
		}

		s.mu.Lock()
		s.calls = append(s.calls, call)
		status, fail := s.failures[r.URL.Path]
		delete(s.failures, r.URL.Path)
		s.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]any{"success": false, "error": "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := intParam(q, "page", 1)
	perPage := intParam(q, "per_page", 10)
	minStars := intParam(q, "min_stars", 1)
	favoritesFirst := strings.EqualFold(q.Get("favorites_first"), "true")
	showRemoved := strings.EqualFold(q.Get("show_removed"), "true")
	keywords := model.FilterState{Keywords: q.Get("keywords")}.KeywordList()

	s.mu.Lock()
	var rows []record
	for _, rec := range s.records {
		if !showRemoved && !rec.show {
			continue
		}
		if minStars > 1 && rec.fellowship.InterestRating < minStars {
			continue
		}
		rows = append(rows, rec)
	}
	s.mu.Unlock()

	if favoritesFirst {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].fellowship.Favorited && !rows[j].fellowship.Favorited
		})
	}
	if len(keywords) > 0 {
		matches := map[int]int{}
		var kept []record
		for _, rec := range rows {
			if n := keywordMatches(rec.fellowship, keywords); n > 0 {
				matches[rec.index] = n
				kept = append(kept, rec)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool {
			return matches[kept[i].index] > matches[kept[j].index]
		})
		rows = kept
	}

	total := len(rows)
	start := min(max(page-1, 0)*perPage, total)
	end := min(start+perPage, total)

	items := make([]map[string]any, 0, end-start)
	for _, rec := range rows[start:end] {
		items = append(items, wireRow(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"fellowships": items,
		"total_count": total,
		"has_more":    (page-1)*perPage+perPage < total,
	})
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Favorited int `json:"favorited"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid body"})
		return
	}
	s.update(w, chi.URLParam(r, "id"), func(rec *record) { rec.fellowship.Favorited = body.Favorited != 0 })
}

func (s *Server) handleShow(show bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.update(w, chi.URLParam(r, "id"), func(rec *record) { rec.show = show })
	}
}

func (s *Server) update(w http.ResponseWriter, id string, apply func(*record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].fellowship.ID == id {
			apply(&s.records[i])
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
}

func (s *Server) handleAck(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": message})
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	available := s.dataAvailable
	s.mu.Unlock()
	message := "Data is available"
	if !available {
		message = "No data available. Please run the scraper and process the data first."
	}
	writeJSON(w, http.StatusOK, map[string]any{"data_available": available, "message": message})
}

// wireRow renders a record the way pandas serializes it.
func wireRow(rec record) map[string]any {
	f := rec.fellowship
	favorited, show := 0, 0
	if f.Favorited {
		favorited = 1
	}
	if rec.show {
		show = 1
	}
	row := map[string]any{
		"id":                 rec.index,
		"title":              f.Title,
		"location":           nullable(f.Location),
		"continent":          nullable(f.Continent),
		"deadline":           nullable(f.Deadline),
		"link":               f.Link,
		"description":        f.Description,
		"subjects":           f.Subjects,
		"total_compensation": nullable(f.TotalCompensation),
		"length_in_years":    nullable(f.LengthYears),
		"interest_rating":    float64(f.InterestRating),
		"favorited":          favorited,
		"show":               show,
	}
	if n, err := strconv.ParseFloat(f.TotalCompensation, 64); err == nil {
		row["total_compensation"] = n
	}
	return row
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func keywordMatches(f model.Fellowship, keywords []string) int {
	text := strings.ToLower(strings.Join([]string{f.Title, f.Description, strings.Join(f.Subjects, ", ")}, " "))
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			count++
		}
	}
	return count
}

func intParam(q url.Values, name string, fallback int) int {
	n, err := strconv.Atoi(q.Get(name))
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fixtures returns n fellowships with ratings cycling 0..4.
func Fixtures(n int) []model.Fellowship {
	out := make([]model.Fellowship, n)
	for i := range out {
		out[i] = model.Fellowship{
			Title:             fmt.Sprintf("Fellowship %02d", i),
			Location:          "Lisbon",
			Continent:         "Europe",
			Deadline:          "2025-06-30",
			Link:              fmt.Sprintf("https://fellowships.example/%d", i),
			Description:       "Research stay in marine biology.",
			Subjects:          []string{"Biology"},
			TotalCompensation: "40000",
			LengthYears:       "1",
			InterestRating:    i % 5,
		}
	}
	return out
}
