package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.Client.validate(),
		c.Log.validate(),
		c.Listing.validate(),
		c.Telemetry.validate(),
		c.Export.validate(),
	)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, errors.New("client.base_url must not be empty"))
	} else if u, err := url.Parse(cl.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("client.base_url must be an absolute URL, got %q", cl.BaseURL))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("client.rate_limit.requests_per_second must not be negative"))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, errors.New("client.rate_limit.burst_size must be >= 1 when rate limiting is enabled"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (li *ListingConfig) validate() error {
	var errs []error

	if li.PageSize < 1 {
		errs = append(errs, fmt.Errorf("listing.page_size must be >= 1, got %d", li.PageSize))
	}
	if li.MinStars < 0 || li.MinStars > 4 {
		errs = append(errs, fmt.Errorf("listing.min_stars must be between 0 and 4, got %d", li.MinStars))
	}
	if li.UndoWindow <= 0 {
		errs = append(errs, errors.New("listing.undo_window must be positive"))
	}
	if li.NoticeTimeout <= 0 {
		errs = append(errs, errors.New("listing.notice_timeout must be positive"))
	}
	if li.ExitAnimation < 0 || li.ReloadDelay < 0 {
		errs = append(errs, errors.New("listing.exit_animation and listing.reload_delay must not be negative"))
	}
	if li.RequestTimeout <= 0 {
		errs = append(errs, errors.New("listing.request_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (e *ExportConfig) validate() error {
	if e.Concurrency < 1 {
		return fmt.Errorf("export.concurrency must be >= 1, got %d", e.Concurrency)
	}
	return nil
}
