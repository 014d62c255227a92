// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server    ServerConfig
	Source    SourceConfig    `mapstructure:"source"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                 int  `mapstructure:"port"`
	ServeSwagger         bool `mapstructure:"serve_swagger"`
	ShutdownTimeoutSec   int  `mapstructure:"shutdown_timeout_sec"`
	ReadHeaderTimeoutSec int  `mapstructure:"read_header_timeout_sec"`
}

// SourceConfig holds settings for the dated XML rate source.
type SourceConfig struct {
	BaseURL          string   `mapstructure:"base_url"`
	Timeout          int      `mapstructure:"timeout_sec"`
	MatchPolicy      string   `mapstructure:"match_policy"`       // "last" or "first"
	Currencies       []string `mapstructure:"currencies"`         // empty means any well-formed code
	MaxDocumentBytes int64    `mapstructure:"max_document_bytes"` // 0 means unlimited
}

// RateLimitConfig holds per-client request limits for the HTTP API.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
// A non-empty configFile is read instead of searching the default paths.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Config search paths
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("./internal/config")
	}

	v.SetEnvPrefix("XRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Server.ShutdownTimeoutSec <= 0 {
		cfg.Server.ShutdownTimeoutSec = 10
	}
	if cfg.Server.ReadHeaderTimeoutSec <= 0 {
		cfg.Server.ReadHeaderTimeoutSec = 5
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.serve_swagger", true)
	v.SetDefault("server.shutdown_timeout_sec", 10)
	v.SetDefault("server.read_header_timeout_sec", 5)
	v.SetDefault("source.base_url", "http://api.finance.xaviermedia.com/api/")
	v.SetDefault("source.timeout_sec", 10)
	v.SetDefault("source.match_policy", "last")
	v.SetDefault("source.currencies", []string{})
	v.SetDefault("source.max_document_bytes", 10<<20)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("log.development", false)
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	if c.Source.BaseURL == "" {
		errs = append(errs, fmt.Errorf("source.base_url is required (set XRATE_SOURCE_BASE_URL)"))
	} else if u, err := url.Parse(c.Source.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("source.base_url must be an absolute URL, got %q", c.Source.BaseURL))
	}
	if c.Source.Timeout < 0 {
		errs = append(errs, fmt.Errorf("source.timeout_sec must be non-negative, got %d", c.Source.Timeout))
	}
	if c.Source.MaxDocumentBytes < 0 {
		errs = append(errs, fmt.Errorf("source.max_document_bytes must be non-negative, got %d", c.Source.MaxDocumentBytes))
	}
	switch strings.ToLower(c.Source.MatchPolicy) {
	case "", "last", "first":
	default:
		errs = append(errs, fmt.Errorf("source.match_policy must be \"first\" or \"last\", got %q", c.Source.MatchPolicy))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.requests_per_second must be positive, got %v", c.RateLimit.RequestsPerSecond))
		}
		if c.RateLimit.Burst <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.burst must be positive, got %d", c.RateLimit.Burst))
		}
	}

	return errors.Join(errs...)
}
