// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command release runs the series release pipeline outside the API process.
//
// # Subcommands
//
//   - pass: Run one release pass and print its result.
//   - daemon: Run a pass every RELEASE_INTERVAL until signalled.
//   - migrate: Apply or roll back database migrations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/nevisa/internal/platform/config"
	"github.com/taibuivan/nevisa/internal/platform/logger"
	pgstore "github.com/taibuivan/nevisa/internal/platform/postgres"
	redisstore "github.com/taibuivan/nevisa/internal/platform/redis"
	"github.com/taibuivan/nevisa/internal/release"
)

var rootCmd = &cobra.Command{
	Use:           "release",
	Short:         "Nevisa series release worker",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// worker holds the dependencies shared by the subcommands.
type worker struct {
	cfg       *config.Config
	log       *slog.Logger
	pool      *pgxpool.Pool
	rdb       *goredis.Client
	scheduler *release.Scheduler
}

// openWorker loads configuration and connects to the backing stores.
func openWorker(ctx context.Context) (*worker, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(os.Stdout, "release", cfg.Debug)

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.WorkerOptions, log)
	if err != nil {
		return nil, err
	}

	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &worker{
		cfg:       cfg,
		log:       log,
		pool:      pool,
		rdb:       rdb,
		scheduler: release.NewDefaultScheduler(pool, rdb, cfg, log),
	}, nil
}

func (w *worker) Close() {
	if w.rdb != nil {
		if err := w.rdb.Close(); err != nil {
			w.log.Error("redis_close_failed", slog.Any("error", err))
		}
	}
	w.pool.Close()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
