package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tycoon/internal/api"
	"tycoon/internal/auth"
	"tycoon/internal/config"
	"tycoon/internal/db"
	"tycoon/internal/game"
	"tycoon/internal/store"
	"tycoon/internal/trace"

	"github.com/joho/godotenv"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := trace.Init(cfg.Tracing, version, os.Stderr); err != nil {
		logger.Error("trace init failed", "err", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = trace.Shutdown(shutdownCtx)
	}()

	catalog := game.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = game.LoadCatalogFile(cfg.CatalogPath)
		if err != nil {
			logger.Error("catalog load failed", "path", cfg.CatalogPath, "err", err)
			os.Exit(1)
		}
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store open failed", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer st.Close()

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("token setup failed", "err", err)
		os.Exit(1)
	}
	accounts := auth.NewAccounts(st, tokens, 0)
	gameSvc := game.NewService(st, catalog, game.NewRand(cfg.RandomSeed), logger)

	server := api.New(logger, accounts, gameSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("tycoon api listening", "addr", cfg.Addr, "store", cfg.Store, "tracing", cfg.Tracing)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.APIConfig) (store.Store, error) {
	switch cfg.Store {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &pooledPostgres{Postgres: store.NewPostgres(pool), close: pool.Close}, nil
	case "memory":
		return store.NewMemory(), nil
	default:
		return store.OpenSQLite(ctx, cfg.SQLitePath)
	}
}

// pooledPostgres closes the pool it was opened with.
type pooledPostgres struct {
	*store.Postgres
	close func()
}

func (p *pooledPostgres) Close() error {
	p.close()
	return nil
}
