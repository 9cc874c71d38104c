package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Auth:     AuthConfig{JWTSecret: "secret"},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Search.DefaultPageSize != 20 || cfg.Search.MaxPageSize != 100 {
		t.Errorf("unexpected pagination defaults: %+v", cfg.Search)
	}
	if cfg.Storage.KeyPrefix != "savora:" {
		t.Errorf("unexpected key prefix %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Geocoder.MinLatitude != 51.28 || cfg.Geocoder.MaxLongitude != 0.236 {
		t.Errorf("unexpected geocoder bounds: %+v", cfg.Geocoder)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected shutdown timeout %d", cfg.HTTP.ShutdownSec)
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := validConfig()
	bad.ApplyDefaults()
	bad.HTTP.Port = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid port")
	}

	bad = validConfig()
	bad.ApplyDefaults()
	bad.Database.Addrs = nil
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing database addrs")
	}

	bad = validConfig()
	bad.ApplyDefaults()
	bad.Auth.JWTSecret = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing jwt secret")
	}

	bad = validConfig()
	bad.ApplyDefaults()
	bad.Geocoder.MinLatitude, bad.Geocoder.MaxLatitude = 52, 51
	if err := bad.Validate(); err == nil {
		t.Error("expected error for inverted latitude bounds")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SAVORA_TEST_VAR", "resolved")

	out := string(expandEnvVars([]byte("addr: ${SAVORA_TEST_VAR}")))
	if out != "addr: resolved" {
		t.Errorf("unexpected expansion %q", out)
	}

	out = string(expandEnvVars([]byte("addr: ${SAVORA_UNSET_VAR:-fallback}")))
	if out != "addr: fallback" {
		t.Errorf("unexpected default expansion %q", out)
	}

	out = string(expandEnvVars([]byte("addr: ${SAVORA_UNSET_VAR}")))
	if out != "addr: " {
		t.Errorf("unset variable without default should expand empty, got %q", out)
	}

	if strings.Contains(string(expandEnvVars([]byte("plain: text"))), "$") {
		t.Error("text without variables must pass through unchanged")
	}
}
