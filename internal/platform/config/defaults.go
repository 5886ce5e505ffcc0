package config

const (
	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultPageSize          = 10
	defaultMinStars          = 1
	defaultExportConcurrency = 4
)

// defaults returns the built-in configuration. They are loaded first and can be
// overridden by the config file and env vars.
func defaults() map[string]any {
	return map[string]any{
		"client.base_url":                        "http://127.0.0.1:5000",
		"client.timeout":                         "30s",
		"client.retry.max_attempts":              defaultRetryMaxAttempts,
		"client.retry.initial_interval":          "200ms",
		"client.retry.max_interval":              "5s",
		"client.retry.multiplier":                defaultRetryMultiplier,
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  0,
		"client.rate_limit.burst_size":           0,

		"log.level":  "info",
		"log.format": "text",
		"log.file":   "",

		"listing.page_size":       defaultPageSize,
		"listing.min_stars":       defaultMinStars,
		"listing.undo_window":     "5s",
		"listing.notice_timeout":  "5s",
		"listing.exit_animation":  "300ms",
		"listing.reload_delay":    "2s",
		"listing.request_timeout": "15s",
		"listing.prefs_file":      "",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "fellows",

		"export.concurrency": defaultExportConcurrency,
		"export.dir":         "",
	}
}
