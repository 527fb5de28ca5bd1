package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fmt"

	httpadapter "wander-ads/internal/adapter/http"
	"wander-ads/internal/adapter/platform"
	"wander-ads/internal/adapter/postgres"
	"wander-ads/internal/adapter/usecase"
	"wander-ads/internal/config"
	"wander-ads/internal/db"
	"wander-ads/internal/workers"
)

// main is the entry point of the wander-ads engine. It loads
// configuration, optionally runs database migrations, initializes the
// database pool, repositories and the batch-pass services, then starts
// the HTTP server and the recurring pass runners. On receiving a
// termination signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	// Optionally run migrations if configured. We use the Psql sub-config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed demo data error", slog.Any("error", err))
		}
	}

	keywordRepo := postgres.NewKeywordRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	runRepo := postgres.NewRunRepository(pool)
	platforms := platform.NewRegistry(cfg.Platform)

	allocSvc := usecase.NewAllocationService(
		keywordRepo, bookingRepo, campaignRepo, runRepo, platforms,
		cfg.Engine, cfg.Platform, nil, logger)
	optSvc := usecase.NewOptimizerService(
		campaignRepo, runRepo, platforms,
		cfg.Engine, cfg.Platform, logger)

	if cfg.Worker.Enabled {
		go workers.Run(ctx, cfg.Worker, allocSvc, optSvc, logger)
	}

	handler := httpadapter.NewHandler(allocSvc, optSvc, campaignRepo, runRepo, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
