package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("KARPOS_BASE_URL")
	os.Unsetenv("HTTP_TIMEOUT_SECONDS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 15 {
		t.Errorf("expected default timeout 15, got %d", cfg.HTTPTimeout)
	}
	if cfg.TokenFile == "" {
		t.Error("expected token file path to be resolved")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("KARPOS_BASE_URL", "https://api.karpos.example")
	os.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	defer os.Unsetenv("KARPOS_BASE_URL")
	defer os.Unsetenv("HTTP_TIMEOUT_SECONDS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "https://api.karpos.example" {
		t.Errorf("expected overridden base URL, got %s", cfg.BaseURL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Timeout())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid http", Config{BaseURL: "http://localhost:8080", HTTPTimeout: 15}, false},
		{"valid https", Config{BaseURL: "https://api.karpos.example", HTTPTimeout: 15}, false},
		{"relative url", Config{BaseURL: "api.karpos.example", HTTPTimeout: 15}, true},
		{"bad scheme", Config{BaseURL: "ftp://api.karpos.example", HTTPTimeout: 15}, true},
		{"zero timeout", Config{BaseURL: "http://localhost:8080", HTTPTimeout: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
