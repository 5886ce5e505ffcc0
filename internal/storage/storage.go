package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/nikbrunner/fellows/internal/model"
)

// Prefs is what the TUI remembers between sessions.
type Prefs struct {
	Filter model.FilterState   `json:"filter"`
	Scrape model.ScrapeRequest `json:"scrape"`
}

// DefaultPrefs returns the preferences used when nothing was saved yet.
func DefaultPrefs() Prefs {
	return Prefs{
		Filter: model.DefaultFilterState(),
		Scrape: model.ScrapeRequest{Cleanup: true, Browser: model.BrowserFirefox},
	}
}

// normalize repairs values a hand-edited file may carry. The page is never
// restored; a session always starts on page 1.
func (p *Prefs) normalize() {
	p.Filter.MinStars = model.ClampStars(p.Filter.MinStars)
	p.Filter.Page = 1
	if p.Filter.PageSize <= 0 {
		p.Filter.PageSize = model.DefaultPageSize
	}
	if _, err := model.ParseBrowser(string(p.Scrape.Browser)); err != nil {
		p.Scrape.Browser = model.BrowserFirefox
	}
}

// Storage persists preferences.
type Storage interface {
	Load() (*Prefs, error)
	Save(prefs *Prefs) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path     string
	defaults *Prefs
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// WithDefaults sets what Load returns while nothing was saved yet.
func (s *JSONStorage) WithDefaults(prefs Prefs) *JSONStorage {
	prefs.normalize()
	s.defaults = &prefs
	return s
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the preferences from the JSON file.
// Returns the defaults if the file doesn't exist.
func (s *JSONStorage) Load() (*Prefs, error) {
	prefs := DefaultPrefs()
	if s.defaults != nil {
		prefs = *s.defaults
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &prefs, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, err
	}
	prefs.normalize()

	return &prefs, nil
}

// Save writes the preferences to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(prefs *Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	out := *prefs
	out.normalize()

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}
