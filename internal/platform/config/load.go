package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nikbrunner/fellows/internal/model"
)

const envPrefix = "FELLOWS_"

// ErrConfigNotFound is returned when an explicitly requested file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// DefaultDir returns ~/.config/fellows.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "fellows")
}

// DefaultPath returns the config file used when no path is given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads the configuration. An empty path means DefaultPath, which may be
// absent. A non-empty path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	envLookup := buildEnvLookup(k.Keys())

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, envPrefix)
			key = strings.ToLower(key)

			if koanfKey, ok := envLookup[key]; ok {
				return koanfKey, value
			}

			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.applyPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// applyPaths fills file locations that default to the config directory.
func (c *Config) applyPaths() {
	if c.Listing.PrefsFile == "" {
		c.Listing.PrefsFile = filepath.Join(DefaultDir(), "filters.json")
	}
	c.Log.File = expandHome(c.Log.File)
	c.Listing.PrefsFile = expandHome(c.Listing.PrefsFile)
	c.Export.Dir = expandHome(c.Export.Dir)
}

// LoadScrapeFilters reads a YAML scrape filter document such as:
//
//	browsing: chrome
//	categories:
//	  Citizenship Requirement: [Any]
//	keywords:
//	  type: OR
//	  words: [ocean, climate]
//	system_instructions: Prefer programs in Europe.
func LoadScrapeFilters(path string) (model.ScrapeFilters, error) {
	k := koanf.New("::")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return model.ScrapeFilters{}, fmt.Errorf("loading filters %s: %w", path, err)
	}

	var filters model.ScrapeFilters
	if err := k.Unmarshal("", &filters); err != nil {
		return model.ScrapeFilters{}, fmt.Errorf("unmarshalling filters: %w", err)
	}
	if filters.Browsing != "" {
		b, err := model.ParseBrowser(string(filters.Browsing))
		if err != nil {
			return model.ScrapeFilters{}, err
		}
		filters.Browsing = b
	}
	return filters.Normalize(), nil
}

// buildEnvLookup maps FELLOWS_ suffixes to koanf keys so that keys containing
// underscores (listing.page_size) resolve from LISTING_PAGE_SIZE.
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		envKey := strings.ReplaceAll(key, ".", "_")
		lookup[envKey] = key
	}
	return lookup
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
