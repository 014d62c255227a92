package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.ServeSwagger)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSec)
	assert.Equal(t, "http://api.finance.xaviermedia.com/api/", cfg.Source.BaseURL)
	assert.Equal(t, 10, cfg.Source.Timeout)
	assert.Equal(t, "last", cfg.Source.MatchPolicy)
	assert.Empty(t, cfg.Source.Currencies)
	assert.Equal(t, int64(10<<20), cfg.Source.MaxDocumentBytes)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
source:
  base_url: http://rates.internal/api/
  match_policy: first
  currencies: [USD, EUR, GBP]
rate_limit:
  enabled: false
`)
	t.Setenv("XRATE_SOURCE_TIMEOUT_SEC", "3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://rates.internal/api/", cfg.Source.BaseURL)
	assert.Equal(t, "first", cfg.Source.MatchPolicy)
	assert.Equal(t, []string{"USD", "EUR", "GBP"}, cfg.Source.Currencies)
	assert.Equal(t, 3, cfg.Source.Timeout)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("XRATE_SOURCE_BASE_URL", "not-a-url")

	_, err := LoadConfig(writeConfig(t, "{}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.base_url must be an absolute URL")
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Server:    ServerConfig{Port: 0},
		Source:    SourceConfig{BaseURL: "", Timeout: -1, MatchPolicy: "middle", MaxDocumentBytes: -1},
		RateLimit: RateLimitConfig{Enabled: true},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"server.port must be positive",
		"source.base_url is required",
		"source.timeout_sec must be non-negative",
		"source.match_policy",
		"source.max_document_bytes must be non-negative",
		"rate_limit.requests_per_second must be positive",
		"rate_limit.burst must be positive",
	} {
		assert.Contains(t, err.Error(), want)
	}

	valid := Config{
		Server: ServerConfig{Port: 8080},
		Source: SourceConfig{BaseURL: "http://api.example.com/api/"},
	}
	assert.NoError(t, valid.Validate())
}
