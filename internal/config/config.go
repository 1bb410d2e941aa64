package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL     string `mapstructure:"KARPOS_BASE_URL"`
	Env         string `mapstructure:"ENV"`
	HTTPTimeout int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	TokenFile   string `mapstructure:"TOKEN_FILE"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	MockPort    string `mapstructure:"MOCK_PORT"`
	Tracing     bool   `mapstructure:"TRACING_ENABLED"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("KARPOS_BASE_URL", "http://localhost:8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MOCK_PORT", "8080")
	v.SetDefault("TRACING_ENABLED", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("KARPOS_BASE_URL")
	v.BindEnv("ENV")
	v.BindEnv("HTTP_TIMEOUT_SECONDS")
	v.BindEnv("TOKEN_FILE")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("MOCK_PORT")
	v.BindEnv("TRACING_ENABLED")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.TokenFile = filepath.Join(dir, "karpos", "tokens.json")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// Validate checks that the configuration is safe to run with. The base URL
// must parse as an absolute http(s) URL and the timeout must be positive.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("KARPOS_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("KARPOS_BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeout)
	}
	return nil
}
