package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://cruisytravel.com/wp-json", c.BaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, c.SearchDebounce)
	assert.Equal(t, 3, c.SearchMinLength)
	assert.Equal(t, 20, c.SearchPageSize)
	assert.Equal(t, "portal.db", c.CredentialsDSN)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://cruisytravel.com/wp-json", cfg.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.SearchDebounce)
}

func Test_parseEnv_Overrides(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "https://staging.cruisytravel.com/wp-json")
	t.Setenv("PORTAL_SEARCH_DEBOUNCE", "250ms")
	t.Setenv("PORTAL_SEARCH_MIN_LENGTH", "2")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://staging.cruisytravel.com/wp-json", cfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 2, cfg.SearchMinLength)
	// Untouched fields keep their defaults.
	assert.Equal(t, "portal.db", cfg.CredentialsDSN)
}

func Test_parseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-b", "http://localhost:8080/wp-json", "-t", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://localhost:8080/wp-json", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "portal.db", cfg.CredentialsDSN)
}
