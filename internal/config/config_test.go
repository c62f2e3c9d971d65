package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadAPIFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TYCOON_API_ADDR", "")
	t.Setenv("TYCOON_STORE", "")
	t.Setenv("TYCOON_JWT_SECRET", "0123456789abcdef")
	t.Setenv("TYCOON_TOKEN_TTL", "")
	t.Setenv("TYCOON_RANDOM_SEED", "")
	t.Setenv("TYCOON_LOG_LEVEL", "")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Store != "sqlite" || cfg.SQLitePath != "tycoon.db" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.RandomSeed != 0 || cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadAPIFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TYCOON_STORE", "Memory")
	t.Setenv("TYCOON_JWT_SECRET", "0123456789abcdef")
	t.Setenv("TYCOON_TOKEN_TTL", "2h")
	t.Setenv("TYCOON_RANDOM_SEED", "42")
	t.Setenv("TYCOON_TRACING", "true")
	t.Setenv("TYCOON_LOG_LEVEL", "debug")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Store != "memory" || cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.RandomSeed != 42 || !cfg.Tracing || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadAPIFromEnvErrors(t *testing.T) {
	tests := []struct {
		name, store, dbURL, secret string
	}{
		{name: "missing secret", store: "memory"},
		{name: "short secret", store: "memory", secret: "short"},
		{name: "postgres without url", store: "postgres", secret: "0123456789abcdef"},
		{name: "unknown store", store: "redis", secret: "0123456789abcdef"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TYCOON_STORE", tc.store)
			t.Setenv("DATABASE_URL", tc.dbURL)
			t.Setenv("TYCOON_JWT_SECRET", tc.secret)
			if _, err := LoadAPIFromEnv(); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadCLIFromEnv(t *testing.T) {
	t.Setenv("TYCOON_API_BASE_URL", "http://example.test:8080/")
	t.Setenv("TYCOON_HOME", "/tmp/tycoon-home")
	cfg := LoadCLIFromEnv()
	if cfg.APIBaseURL != "http://example.test:8080" || cfg.Home != "/tmp/tycoon-home" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
