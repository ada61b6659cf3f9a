// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Nevisa HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialize the structured logger.
//  3. Connect to PostgreSQL (pgxpool) and, when configured, Redis.
//  4. Run database migrations (idempotent).
//  5. Wire domain handlers.
//  6. Start the HTTP server with graceful shutdown.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/nevisa/internal/api"
	"github.com/taibuivan/nevisa/internal/follow"
	"github.com/taibuivan/nevisa/internal/platform/config"
	"github.com/taibuivan/nevisa/internal/platform/constants"
	"github.com/taibuivan/nevisa/internal/platform/logger"
	"github.com/taibuivan/nevisa/internal/platform/migration"
	pgstore "github.com/taibuivan/nevisa/internal/platform/postgres"
	redisstore "github.com/taibuivan/nevisa/internal/platform/redis"
	"github.com/taibuivan/nevisa/internal/platform/sec"
	"github.com/taibuivan/nevisa/internal/release"
	"github.com/taibuivan/nevisa/internal/series"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadAPI()
	if err != nil {
		slog.Error("startup_failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	log := logger.New(os.Stdout, "api", cfg.Debug)
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.APIOptions, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token verification ─────────────────────────────────────────────
	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "load jwt public key")

	// ── 7. Health handlers ────────────────────────────────────────────────
	deps := api.HealthDependencies{
		Database: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		deps.Cache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(deps, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	seriesService := series.NewService(series.NewSeriesRepository(pool), log)
	followService := follow.NewService(follow.NewPostgresRepository(pool), log)
	scheduler := release.NewDefaultScheduler(pool, rdb, &cfg.Config, log)

	server := api.NewServer(rootCtx, cfg, log, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Series:    series.NewHandler(seriesService),
		Follow:    follow.NewHandler(followService),
		Release:   release.NewHandler(scheduler),
	})

	// ── 9. Serve until signalled ──────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must terminates the process on startup errors. Use it only for wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
