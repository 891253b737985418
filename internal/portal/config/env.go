package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the Config fields that can be set from the environment.
// Pointer fields distinguish "unset" from an explicit zero value.
type envConfig struct {
	BaseURL         *string        `env:"PORTAL_BASE_URL"`
	RequestTimeout  *time.Duration `env:"PORTAL_REQUEST_TIMEOUT"`
	SearchDebounce  *time.Duration `env:"PORTAL_SEARCH_DEBOUNCE"`
	SearchMinLength *int           `env:"PORTAL_SEARCH_MIN_LENGTH"`
	SearchPageSize  *int           `env:"PORTAL_SEARCH_PAGE_SIZE"`
	CredentialsDSN  *string        `env:"PORTAL_CREDENTIALS_DSN"`
	LogLevel        *string        `env:"PORTAL_LOG_LEVEL"`
}

// parseEnv overlays Config with values from PORTAL_* environment variables.
// Panics on malformed values.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.BaseURL != nil {
		cfg.BaseURL = *ec.BaseURL
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.SearchDebounce != nil {
		cfg.SearchDebounce = *ec.SearchDebounce
	}
	if ec.SearchMinLength != nil {
		cfg.SearchMinLength = *ec.SearchMinLength
	}
	if ec.SearchPageSize != nil {
		cfg.SearchPageSize = *ec.SearchPageSize
	}
	if ec.CredentialsDSN != nil {
		cfg.CredentialsDSN = *ec.CredentialsDSN
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
}
