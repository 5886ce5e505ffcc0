package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/tui/layout"
)

// Mode is the current input mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeKeywords
	ModeAPIKey
	ModeScrape
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeFilter:
		return "filter"
	case ModeKeywords:
		return "keywords"
	case ModeAPIKey:
		return "api key"
	case ModeScrape:
		return "scrape"
	case ModeHelp:
		return "help"
	default:
		return "normal"
	}
}

// SearchState holds the keyword search input and the local fuzzy filter.
type SearchState struct {
	// Keyword search, sent to the backend.
	KeywordsInput textinput.Model

	// Local filter over loaded cards.
	FilterInput textinput.Model
	FilterQuery string // persists after closing the filter input
}

// NewSearchState creates a new SearchState with initialized inputs.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	keywords := textinput.New()
	keywords.Placeholder = "ocean, climate, ..."
	keywords.CharLimit = cfg.Input.KeywordsCharLimit
	keywords.Width = cfg.Input.StandardWidth

	filter := textinput.New()
	filter.Placeholder = "Filter loaded..."
	filter.CharLimit = cfg.Input.FilterCharLimit
	filter.Width = cfg.Input.FilterWidth

	return SearchState{
		KeywordsInput: keywords,
		FilterInput:   filter,
	}
}

// ResetFilter clears the local filter.
func (s *SearchState) ResetFilter() {
	s.FilterInput.Reset()
	s.FilterQuery = ""
}

// APIKeyState holds the API key form.
type APIKeyState struct {
	Provider model.APIKeyProvider
	Input    textinput.Model
}

// NewAPIKeyState creates the form with a masked input.
func NewAPIKeyState(cfg layout.LayoutConfig) APIKeyState {
	input := textinput.New()
	input.Placeholder = "paste key"
	input.CharLimit = cfg.Input.APIKeyCharLimit
	input.Width = cfg.Input.StandardWidth
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'

	return APIKeyState{Provider: model.ProviderGemini, Input: input}
}

// Reset clears the key and returns to the default provider.
func (s *APIKeyState) Reset() {
	s.Input.Reset()
	s.Provider = model.ProviderGemini
}

// ToggleProvider switches between the supported providers.
func (s *APIKeyState) ToggleProvider() {
	if s.Provider == model.ProviderGemini {
		s.Provider = model.ProviderPerplexity
	} else {
		s.Provider = model.ProviderGemini
	}
}

// ScrapeStep is the question the scrape dialog is asking.
type ScrapeStep int

const (
	ScrapeAskCleanup ScrapeStep = iota
	ScrapeAskBrowser
)

// ScrapeState holds the two-step scrape dialog.
type ScrapeState struct {
	Step    ScrapeStep
	Request model.ScrapeRequest
}

// Start opens the dialog with defaults taken from the last run.
func (s *ScrapeState) Start(last model.ScrapeRequest) {
	s.Step = ScrapeAskCleanup
	s.Request = last
	if s.Request.Browser == "" {
		s.Request.Browser = model.BrowserFirefox
	}
}
