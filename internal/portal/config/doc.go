// Package config loads runtime configuration for the ambassador portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), prefix PORTAL_.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the CMS REST API (e.g. https://cruisytravel.com/wp-json)
//	-t int      request timeout (seconds)
//	-d string   path of the local credentials database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "500ms" or integer nanoseconds:
//
//	{
//	  "base_url": "https://cruisytravel.com/wp-json",
//	  "request_timeout": "15s",
//	  "search_debounce": "500ms",
//	  "search_min_length": 3,
//	  "search_page_size": 20,
//	  "credentials_dsn": "portal.db",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                     — holds all runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
