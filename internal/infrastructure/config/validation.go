package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validatePopout(config)...)
	validationErrors = append(validationErrors, validateStorage(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validatePopout(config *Config) []string {
	var validationErrors []string
	p := config.Popout
	if p.PollIntervalMs <= 0 {
		validationErrors = append(validationErrors, "popout.poll_interval_ms must be positive")
	}
	if p.CloseDelayMs < 0 {
		validationErrors = append(validationErrors, "popout.close_delay_ms must be non-negative")
	}
	if p.ReadinessTimeoutMs < 0 {
		validationErrors = append(validationErrors, "popout.readiness_timeout_ms must be non-negative (0 disables the timeout)")
	}
	if p.DefaultWidth <= 0 || p.DefaultHeight <= 0 {
		validationErrors = append(validationErrors, "popout.default_width and popout.default_height must be positive")
	}
	if u, err := url.Parse(p.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		validationErrors = append(validationErrors, fmt.Sprintf("popout.base_url must be an absolute URL (got: %q)", p.BaseURL))
	}
	return validationErrors
}

func validateStorage(config *Config) []string {
	var validationErrors []string
	switch config.Storage.Backend {
	case StorageBackendSQLite, StorageBackendMemory:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("storage.backend must be one of: sqlite, memory (got: %s)", config.Storage.Backend))
	}
	if config.Storage.PayloadMaxAgeMinutes < 0 {
		validationErrors = append(validationErrors, "storage.payload_max_age_minutes must be non-negative")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error, disabled (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}
	return validationErrors
}
