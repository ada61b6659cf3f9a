// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/nevisa/internal/follow"
	"github.com/taibuivan/nevisa/internal/platform/mail"
	"github.com/taibuivan/nevisa/internal/release"
	"github.com/taibuivan/nevisa/internal/series"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Repository Fake

type episodeRow struct {
	due        release.DueEpisode
	releasedAt *time.Time
}

// memoryRepository applies the same compare-and-set rule as the SQL store.
type memoryRepository struct {
	mu            sync.Mutex
	rows          map[string]*episodeRow
	followers     map[string][]follow.Follower
	notifications []release.Notification
	failures      map[string]error

	// listBarrier, when set, holds first-page ListDue calls until all callers arrive.
	listBarrier *sync.WaitGroup
	listCalls   int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		rows:      map[string]*episodeRow{},
		followers: map[string][]follow.Follower{},
		failures:  map[string]error{},
	}
}

func (repository *memoryRepository) addEpisode(seriesID, episodeID string, order int, releaseAt time.Time) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.rows[episodeID] = &episodeRow{due: release.DueEpisode{
		Series: &series.Series{ID: seriesID, Slug: "series-" + seriesID, Title: "Series " + seriesID, Status: series.StatusPublished},
		Episode: &series.Episode{
			ID:        episodeID,
			SeriesID:  seriesID,
			Order:     order,
			ReleaseAt: &releaseAt,
			Article:   series.Article{ID: "article-" + episodeID, Title: "Episode " + episodeID, Slug: "ep-" + episodeID, AuthorID: "author-1"},
		},
	}}
}

func (repository *memoryRepository) setFollowers(seriesID string, followers ...follow.Follower) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.followers[seriesID] = followers
}

func (repository *memoryRepository) failEpisode(episodeID string, err error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if err == nil {
		delete(repository.failures, episodeID)
		return
	}
	repository.failures[episodeID] = err
}

func (repository *memoryRepository) releasedAt(episodeID string) *time.Time {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.rows[episodeID].releasedAt
}

func (repository *memoryRepository) notificationCount() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.notifications)
}

func (repository *memoryRepository) ListDue(_ context.Context, now time.Time, after *release.Cursor, limit int) ([]release.DueEpisode, error) {
	repository.mu.Lock()
	repository.listCalls++
	barrier := repository.listBarrier

	var due []release.DueEpisode
	for _, row := range repository.rows {
		episode := row.due.Episode
		if row.releasedAt != nil || episode.ReleaseAt == nil || episode.ReleaseAt.After(now) {
			continue
		}
		due = append(due, release.DueEpisode{Series: row.due.Series, Episode: episode})
	}
	repository.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		left, right := due[i].Episode, due[j].Episode
		if !left.ReleaseAt.Equal(*right.ReleaseAt) {
			return left.ReleaseAt.Before(*right.ReleaseAt)
		}
		return left.ID < right.ID
	})

	if after != nil {
		filtered := due[:0]
		for _, item := range due {
			at := *item.Episode.ReleaseAt
			if at.After(after.ReleaseAt) || (at.Equal(after.ReleaseAt) && item.Episode.ID > after.EpisodeID) {
				filtered = append(filtered, item)
			}
		}
		due = filtered
	} else if barrier != nil {
		barrier.Done()
		barrier.Wait()
	}

	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (repository *memoryRepository) Release(_ context.Context, due release.DueEpisode, now time.Time, compose release.ComposeFunc) (*release.Outcome, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if err := repository.failures[due.Episode.ID]; err != nil {
		return nil, err
	}

	row := repository.rows[due.Episode.ID]
	scheduled := row.due.Episode.ReleaseAt
	if row.releasedAt != nil || scheduled == nil || scheduled.After(now) {
		return &release.Outcome{Released: false}, nil
	}

	stamp := now
	row.releasedAt = &stamp

	followers := append([]follow.Follower(nil), repository.followers[due.Series.ID]...)
	for _, follower := range followers {
		repository.notifications = append(repository.notifications, compose(follower))
	}

	return &release.Outcome{Released: true, Notifications: len(followers), Followers: followers}, nil
}

// # Transport Fake

// recordingTransport records sends and answers according to its behaviour hook.
type recordingTransport struct {
	mu     sync.Mutex
	sent   []mail.SeriesReleaseEmail
	answer func(email mail.SeriesReleaseEmail) (mail.Receipt, error)
}

func deliveringTransport() *recordingTransport {
	return &recordingTransport{answer: func(mail.SeriesReleaseEmail) (mail.Receipt, error) {
		return mail.Receipt{Delivered: true}, nil
	}}
}

func failingTransport() *recordingTransport {
	return &recordingTransport{answer: func(mail.SeriesReleaseEmail) (mail.Receipt, error) {
		return mail.Receipt{}, errors.New("provider unavailable")
	}}
}

func (transport *recordingTransport) SendSeriesReleaseEmail(_ context.Context, email mail.SeriesReleaseEmail) (mail.Receipt, error) {
	transport.mu.Lock()
	transport.sent = append(transport.sent, email)
	transport.mu.Unlock()
	return transport.answer(email)
}

func (transport *recordingTransport) recipients() []string {
	transport.mu.Lock()
	defer transport.mu.Unlock()
	var to []string
	for _, email := range transport.sent {
		to = append(to, email.To)
	}
	sort.Strings(to)
	return to
}

// # Lease Fake

type stubLease struct {
	held     bool
	err      error
	unlocked int

	// unlockCtxErr is the unlock context's Err() at the time of the call.
	unlockCtxErr error
}

func (lease *stubLease) Acquire(context.Context) (func(context.Context) error, bool, error) {
	if lease.err != nil {
		return nil, false, lease.err
	}
	if lease.held {
		return nil, false, nil
	}
	return func(ctx context.Context) error {
		lease.unlocked++
		lease.unlockCtxErr = ctx.Err()
		return nil
	}, true, nil
}

// # Channel Fake

type countingChannel struct {
	mu        sync.Mutex
	delivered []string
}

func (channel *countingChannel) Name() string { return "push" }

func (channel *countingChannel) Accepts(follow.Follower) bool { return true }

func (channel *countingChannel) Deliver(_ context.Context, follower follow.Follower, _ release.Event) (bool, error) {
	channel.mu.Lock()
	defer channel.mu.Unlock()
	channel.delivered = append(channel.delivered, follower.UserID)
	return true, nil
}
