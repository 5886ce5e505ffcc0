// Package config loads fellows configuration from defaults, a YAML file and
// FELLOWS_ environment variables, in that order of precedence.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Client    ClientConfig    `koanf:"client"`
	Log       LogConfig       `koanf:"log"`
	Listing   ListingConfig   `koanf:"listing"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Export    ExportConfig    `koanf:"export"`
}

// ClientConfig configures the backend HTTP client.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig applies to idempotent requests only.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig is disabled when RequestsPerSecond is zero.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// LogConfig selects level, format and destination. An empty File discards logs
// in the TUI and writes to stderr for CLI commands.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// ListingConfig tunes the listing controller.
type ListingConfig struct {
	PageSize       int           `koanf:"page_size"`
	MinStars       int           `koanf:"min_stars"`
	UndoWindow     time.Duration `koanf:"undo_window"`
	NoticeTimeout  time.Duration `koanf:"notice_timeout"`
	ExitAnimation  time.Duration `koanf:"exit_animation"`
	ReloadDelay    time.Duration `koanf:"reload_delay"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	PrefsFile      string        `koanf:"prefs_file"`
}

type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// ExportConfig controls the bulk collector used by the export command.
type ExportConfig struct {
	Concurrency int    `koanf:"concurrency"`
	Dir         string `koanf:"dir"`
}
