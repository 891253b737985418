package config

import "time"

// Config holds runtime settings for the ambassador portal CLI.
//
// Fields:
//   - BaseURL: root of the CMS REST API, without a trailing slash.
//   - RequestTimeout: per-request HTTP timeout.
//   - SearchDebounce: quiet period before a catalog search is dispatched.
//   - SearchMinLength: minimum term length that triggers a search.
//   - SearchPageSize: maximum catalog rows requested per search.
//   - CredentialsDSN: SQLite DSN of the local credential store.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	BaseURL         string
	RequestTimeout  time.Duration
	SearchDebounce  time.Duration
	SearchMinLength int
	SearchPageSize  int
	CredentialsDSN  string
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://cruisytravel.com/wp-json"
	c.RequestTimeout = 15 * time.Second
	c.SearchDebounce = 500 * time.Millisecond
	c.SearchMinLength = 3
	c.SearchPageSize = 20
	c.CredentialsDSN = "portal.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
