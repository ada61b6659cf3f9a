// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/nevisa/internal/platform/config"
	"github.com/taibuivan/nevisa/internal/platform/constants"
	"github.com/taibuivan/nevisa/internal/platform/mail"
)

/*
NewDefaultScheduler wires the production scheduler from configuration.

Parameters:
  - pool: *pgxpool.Pool
  - rdb: *redis.Client (nil disables the pass lease)
  - cfg: *config.Config
  - logger: *slog.Logger
*/
func NewDefaultScheduler(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, logger *slog.Logger) *Scheduler {
	transport := mail.NewTransport(cfg.Mail, logger)
	email := NewEmailDispatcher(transport, cfg.Mail.RatePerSecond, cfg.Mail.Timeout, cfg.Mail.Concurrency, logger)

	var lease Lease
	if rdb != nil {
		lease = NewRedisLease(rdb, constants.RedisKeyReleaseLease, cfg.Release.LeaseTTL)
	}

	return NewScheduler(
		NewPostgresRepository(pool),
		NewComposer(),
		email,
		Options{BatchSize: cfg.Release.BatchSize, SiteBaseURL: cfg.SiteBaseURL},
		lease,
		logger,
	)
}
