package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/flagx"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "500ms"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	BaseURL         string         `json:"base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	SearchDebounce  timex.Duration `json:"search_debounce"`
	SearchMinLength int            `json:"search_min_length"`
	SearchPageSize  int            `json:"search_page_size"`
	CredentialsDSN  string         `json:"credentials_dsn"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when neither is set, no JSON is
// loaded. Only fields present in the file override the current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SearchDebounce.Duration != 0 {
		cfg.SearchDebounce = time.Duration(jc.SearchDebounce.Duration)
	}
	if jc.SearchMinLength != 0 {
		cfg.SearchMinLength = jc.SearchMinLength
	}
	if jc.SearchPageSize != 0 {
		cfg.SearchPageSize = jc.SearchPageSize
	}
	if jc.CredentialsDSN != "" {
		cfg.CredentialsDSN = jc.CredentialsDSN
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
