package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jblackburn/alembic/internal/api"
	"github.com/jblackburn/alembic/internal/config"
	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/db"
)

const ConfigPath = "config/alchemyserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ALEMBIC_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("alembic server starting",
		"log_level", cfg.LogLevel,
		"catalog_source", cfg.CatalogSource)

	catalog, err := loadCatalog(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	addr := net.JoinHostPort(cfg.BindAddress, strconv.Itoa(cfg.Port))
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(catalog),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// loadCatalog picks the catalog source: the embedded CSV dataset or
// PostgreSQL. The database is migrated and, when empty, seeded from
// the embedded dataset before loading.
func loadCatalog(ctx context.Context, cfg config.Server) (*data.Catalog, error) {
	if cfg.CatalogSource != "postgres" {
		return data.Load()
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	repo := db.NewCatalogRepository(database)
	empty, err := repo.IsEmpty(ctx)
	if err != nil {
		return nil, err
	}
	if empty {
		seed, err := data.Load()
		if err != nil {
			return nil, fmt.Errorf("loading seed dataset: %w", err)
		}
		if err := repo.Seed(ctx, seed); err != nil {
			return nil, fmt.Errorf("seeding catalog: %w", err)
		}
		slog.Info("catalog seeded from embedded dataset")
	}

	return repo.Load(ctx)
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
