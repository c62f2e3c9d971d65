package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	Addr        string
	Store       string
	DatabaseURL string
	SQLitePath  string
	JWTSecret   string
	TokenTTL    time.Duration
	CatalogPath string
	RandomSeed  int64
	Tracing     bool
	LogLevel    slog.Level
}

type CLIConfig struct {
	APIBaseURL string
	Home       string
	LogLevel   slog.Level
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("TYCOON_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:        addr,
		Store:       strings.ToLower(envDefault("TYCOON_STORE", "sqlite")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:  envDefault("TYCOON_SQLITE_PATH", "tycoon.db"),
		JWTSecret:   strings.TrimSpace(os.Getenv("TYCOON_JWT_SECRET")),
		TokenTTL:    envDurationDefault("TYCOON_TOKEN_TTL", 24*time.Hour),
		CatalogPath: strings.TrimSpace(os.Getenv("TYCOON_CATALOG_PATH")),
		RandomSeed:  envIntDefault("TYCOON_RANDOM_SEED", 0),
		Tracing:     envBoolDefault("TYCOON_TRACING", false),
		LogLevel:    envLevelDefault("TYCOON_LOG_LEVEL", slog.LevelInfo),
	}
	switch cfg.Store {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return cfg, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case "sqlite", "memory":
	default:
		return cfg, fmt.Errorf("TYCOON_STORE must be postgres, sqlite or memory, got %q", cfg.Store)
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("TYCOON_JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 16 {
		return cfg, fmt.Errorf("TYCOON_JWT_SECRET must be at least 16 bytes")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	home := strings.TrimSpace(os.Getenv("TYCOON_HOME"))
	if home == "" {
		if dir, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(dir, ".tycoon")
		} else {
			home = ".tycoon"
		}
	}
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("TYCOON_API_BASE_URL", "http://localhost:8080"), "/"),
		Home:       home,
		LogLevel:   envLevelDefault("TYCOON_LOG_LEVEL", slog.LevelWarn),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntDefault(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envLevelDefault(key string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
