package model

import (
	"fmt"
	"sort"
	"strings"
)

// Browser is the browser the scraper drives.
type Browser string

const (
	BrowserFirefox Browser = "firefox"
	BrowserChrome  Browser = "chrome"
)

// ParseBrowser accepts "firefox" or "chrome" in any case.
func ParseBrowser(s string) (Browser, error) {
	switch b := Browser(strings.ToLower(strings.TrimSpace(s))); b {
	case BrowserFirefox, BrowserChrome:
		return b, nil
	default:
		return "", fmt.Errorf("unknown browser %q: want firefox or chrome", s)
	}
}

// ScrapeRequest is the body of POST /scrape.
type ScrapeRequest struct {
	Cleanup bool    `json:"cleanup"`
	Browser Browser `json:"browser"`
}

// KeywordLogic joins keyword filters.
type KeywordLogic string

const (
	KeywordsAll KeywordLogic = "AND"
	KeywordsAny KeywordLogic = "OR"
)

// KeywordFilter selects listings by keyword.
type KeywordFilter struct {
	Type  KeywordLogic `json:"type" koanf:"type"`
	Words []string     `json:"words" koanf:"words"`
}

// ScrapeFilters is the body of POST /api/filters. Categories map a category
// name (e.g. "Citizenship Requirement") to the selected option labels.
type ScrapeFilters struct {
	Browsing           Browser             `json:"Browsing" koanf:"browsing"`
	Categories         map[string][]string `json:"categories" koanf:"categories"`
	Keywords           KeywordFilter       `json:"keywords" koanf:"keywords"`
	SystemInstructions string              `json:"system_instructions" koanf:"system_instructions"`
}

// Normalize trims inputs, drops empty selections and fills defaults so that
// nothing empty is sent to the backend.
func (s ScrapeFilters) Normalize() ScrapeFilters {
	out := ScrapeFilters{
		Browsing:           s.Browsing,
		Categories:         map[string][]string{},
		Keywords:           KeywordFilter{Type: s.Keywords.Type, Words: compact(s.Keywords.Words)},
		SystemInstructions: strings.TrimSpace(s.SystemInstructions),
	}
	if out.Browsing == "" {
		out.Browsing = BrowserFirefox
	}
	if out.Keywords.Type != KeywordsAny {
		out.Keywords.Type = KeywordsAll
	}
	for name, options := range s.Categories {
		name = strings.TrimSpace(name)
		options = compact(options)
		if name == "" || len(options) == 0 {
			continue
		}
		out.Categories[name] = options
	}
	return out
}

// CategoryNames returns the selected categories in a stable order.
func (s ScrapeFilters) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// APIKeyProvider names a third-party service the backend needs a key for.
type APIKeyProvider string

const (
	ProviderGemini     APIKeyProvider = "gemini"
	ProviderPerplexity APIKeyProvider = "perplexity"
)

// ParseProvider accepts "gemini" or "perplexity".
func ParseProvider(s string) (APIKeyProvider, error) {
	switch p := APIKeyProvider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderGemini, ProviderPerplexity:
		return p, nil
	default:
		return "", fmt.Errorf("unknown provider %q: want gemini or perplexity", s)
	}
}

// Field is the JSON field the key is posted under.
func (p APIKeyProvider) Field() string {
	return string(p) + "_api_key"
}
