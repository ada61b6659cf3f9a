// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

const defaultBatchSize = 100

// Options tunes a [Scheduler].
type Options struct {
	// BatchSize caps how many due episodes are loaded per query.
	BatchSize int

	// SiteBaseURL is the public origin used for episode links.
	SiteBaseURL string
}

// # Scheduler

// Scheduler runs release passes.
type Scheduler struct {
	repo     Repository
	composer *Composer
	email    *EmailDispatcher
	extra    []*Dispatcher
	lease    Lease
	options  Options
	logger   *slog.Logger
}

/*
NewScheduler constructs a [Scheduler].

Parameters:
  - repo: Repository
  - composer: *Composer (in-app message rendering)
  - email: *EmailDispatcher (nil disables email)
  - options: Options
  - lease: Lease (nil runs every pass unconditionally)
  - logger: *slog.Logger
  - extra: additional post-commit channels
*/
func NewScheduler(repo Repository, composer *Composer, email *EmailDispatcher, options Options, lease Lease, logger *slog.Logger, extra ...*Dispatcher) *Scheduler {
	if options.BatchSize <= 0 {
		options.BatchSize = defaultBatchSize
	}

	return &Scheduler{
		repo:     repo,
		composer: composer,
		email:    email,
		extra:    extra,
		lease:    lease,
		options:  options,
		logger:   logger,
	}
}

/*
RunReleasePass releases every episode due at now.

Description: Each due episode gets its own transaction. A failing episode is
logged, left due for the next pass, and does not stop the others. Emails go out
after each commit and never affect the result's release counts.

Parameters:
  - context: context.Context
  - now: time.Time

Returns:
  - Result: Counts for this pass
  - error: Listing failures, or the joined per-episode transaction failures
*/
func (scheduler *Scheduler) RunReleasePass(context context.Context, now time.Time) (Result, error) {
	var result Result

	// 1. Optional cross-process lease
	if scheduler.lease != nil {
		unlock, ok, err := scheduler.lease.Acquire(context)
		switch {
		case err != nil:
			scheduler.logger.Warn("release_lease_unavailable", slog.Any("error", err))
		case !ok:
			scheduler.logger.Info("release_pass_skipped", slog.String("reason", "lease held elsewhere"))
			result.Skipped = true
			return result, nil
		default:
			defer func() {
				if err := releaseLease(context, unlock); err != nil {
					scheduler.logger.Warn("release_lease_unlock_failed", slog.Any("error", err))
				}
			}()
		}
	}

	started := time.Now()
	var failures []error
	var cursor *Cursor

	// 2. Walk due episodes page by page
	for {
		if err := context.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		page, err := scheduler.repo.ListDue(context, now, cursor, scheduler.options.BatchSize)
		if err != nil {
			failures = append(failures, fmt.Errorf("release: list due episodes: %w", err))
			break
		}

		for _, due := range page {
			if err := scheduler.releaseOne(context, due, now, &result); err != nil {
				failures = append(failures, err)
			}
		}

		if len(page) < scheduler.options.BatchSize {
			break
		}
		last := page[len(page)-1].Episode
		cursor = &Cursor{ReleaseAt: *last.ReleaseAt, EpisodeID: last.ID}
	}

	scheduler.logger.Info("release_pass_completed",
		slog.Int("released", result.Released),
		slog.Int("notifications", result.Notifications),
		slog.Int("email_attempts", result.EmailAttempts),
		slog.Int("email_delivered", result.EmailDelivered),
		slog.Int("already_handled", result.AlreadyHandled),
		slog.Int("failures", len(failures)),
		slog.Duration("duration", time.Since(started)),
	)

	return result, errors.Join(failures...)
}

// releaseOne commits one episode and runs its post-commit channels.
func (scheduler *Scheduler) releaseOne(context context.Context, due DueEpisode, now time.Time, result *Result) error {
	event := Event{
		Series:     due.Series,
		Episode:    due.Episode,
		ReleasedAt: now,
		EpisodeURL: scheduler.episodeURL(due),
	}

	outcome, err := scheduler.repo.Release(context, due, now, scheduler.composer.For(event))
	if err != nil {
		scheduler.logger.Error("release_transaction_failed",
			slog.String("series_id", due.Series.ID),
			slog.String("episode_id", due.Episode.ID),
			slog.Any("error", err),
		)
		return fmt.Errorf("release: episode %s: %w", due.Episode.ID, err)
	}

	if !outcome.Released {
		result.AlreadyHandled++
		scheduler.logger.Info("release_already_handled", slog.String("episode_id", due.Episode.ID))
		return nil
	}

	result.Released++
	result.Notifications += outcome.Notifications

	scheduler.logger.Info("episode_released",
		slog.String("series_id", due.Series.ID),
		slog.String("episode_id", due.Episode.ID),
		slog.String("article_id", due.Episode.Article.ID),
		slog.Int("notifications", outcome.Notifications),
	)

	// Post-commit, best-effort
	if scheduler.email != nil {
		tally := scheduler.email.NotifyFollowersByEmail(context, event, outcome.Followers)
		result.EmailAttempts += tally.Attempts
		result.EmailDelivered += tally.Delivered
	}

	for _, dispatcher := range scheduler.extra {
		tally := dispatcher.Dispatch(context, event, outcome.Followers)
		if result.Channels == nil {
			result.Channels = map[string]Tally{}
		}
		result.Channels[dispatcher.Name()] = result.Channels[dispatcher.Name()].Add(tally)
	}

	return nil
}

// episodeURL builds the public reading link, or "" when the base is unusable.
func (scheduler *Scheduler) episodeURL(due DueEpisode) string {
	link, err := url.JoinPath(scheduler.options.SiteBaseURL, "series", due.Series.Slug, due.Episode.Article.Slug)
	if err != nil {
		scheduler.logger.Warn("release_episode_url_invalid",
			slog.String("base", scheduler.options.SiteBaseURL),
			slog.Any("error", err),
		)
		return ""
	}
	return link
}
