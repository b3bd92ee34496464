package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyberquest/backend/internal/catalog"
	"github.com/cyberquest/backend/internal/config"
	"github.com/cyberquest/backend/internal/database"
	"github.com/cyberquest/backend/internal/database/postgres"
	"github.com/cyberquest/backend/internal/event"
	"github.com/cyberquest/backend/internal/eventlog"
	"github.com/cyberquest/backend/internal/handler"
	"github.com/cyberquest/backend/internal/leaderboard"
	"github.com/cyberquest/backend/internal/progression"
	"github.com/cyberquest/backend/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	handler.InitValidator()

	ctx := context.Background()

	// Apply schema migrations before opening the pool
	if err := database.Migrate(ctx, cfg.GetDBConnString()); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:  cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxIdleTime: cfg.DBMaxIdleTime,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Content catalog is immutable once loaded; a malformed catalog aborts startup
	content, err := catalog.NewLoader(cfg.CatalogDir).Load()
	if err != nil {
		slog.Error("Failed to load content catalog", "error", err, "dir", cfg.CatalogDir)
		os.Exit(1)
	}
	slog.Info("Content catalog loaded", "categories", len(content.Categories()))

	// Repositories
	progressionRepo := postgres.NewProgressionRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	submissionRepo := postgres.NewSubmissionRepository(dbPool)

	// Event bus and subscribers
	bus := event.NewMemoryBus()
	eventlog.NewEventHandler(submissionRepo).Register(bus)

	// Services
	progressionService := progression.NewService(progressionRepo, content, bus)
	leaderboardService := leaderboard.NewService(progressionRepo, userRepo, cfg.LeaderboardCacheSize, cfg.LeaderboardCacheTTL)
	eventlogService := eventlog.NewService(submissionRepo)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, content, userRepo, progressionService, leaderboardService, eventlogService)

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
