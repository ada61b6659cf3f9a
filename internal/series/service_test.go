// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nevisa/internal/platform/apperr"
)

type fakeSeriesRepository struct {
	series       map[string]*Series
	history      map[string]History
	historyCalls int
}

func (repository *fakeSeriesRepository) FindPublishedBySlug(_ context.Context, slug string) (*Series, error) {
	series, ok := repository.series[slug]
	if !ok || !series.IsPublished() {
		return nil, apperr.NotFound("Series")
	}
	return series, nil
}

func (repository *fakeSeriesRepository) ReadingHistory(_ context.Context, userID string, articleIDs []string) (History, error) {
	repository.historyCalls++
	result := History{}
	for _, articleID := range articleIDs {
		if progress, ok := repository.history[userID][articleID]; ok {
			result[articleID] = progress
		}
	}
	return result, nil
}

func newTestService(repository SeriesRepository, now time.Time) *Service {
	service := NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.now = func() time.Time { return now }
	return service
}

/*
TestService_Views runs the read paths against a fixed snapshot.
*/
func TestService_Views(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	later := now.Add(48 * time.Hour)

	repository := &fakeSeriesRepository{
		series: map[string]*Series{
			"shahnameh": {
				ID:            "series-1",
				Slug:          "shahnameh",
				Status:        StatusPublished,
				FollowerCount: 2,
				Episodes: []*Episode{
					{ID: "e1", Article: Article{ID: "a1"}, Order: 1},
					{ID: "e2", Article: Article{ID: "a2"}, Order: 2},
					{ID: "e3", Article: Article{ID: "a3"}, Order: 3, ReleaseAt: &later},
				},
			},
			"draft": {ID: "series-2", Slug: "draft", Status: StatusDraft},
		},
		history: map[string]History{
			"reader-1": {"a1": 1.0, "a2": 0.4},
		},
	}
	service := newTestService(repository, now)
	ctx := context.Background()

	t.Run("progress_for_reader", func(t *testing.T) {
		report, err := service.GetSeriesProgress(ctx, "shahnameh", "reader-1")
		require.NoError(t, err)
		assert.Equal(t, SeriesProgress{ArticleCount: 2, FollowerCount: 2, CompletedCount: 1, ProgressPercent: 50}, report.Progress)
	})

	t.Run("anonymous_skips_history", func(t *testing.T) {
		calls := repository.historyCalls
		report, err := service.GetSeriesProgress(ctx, "shahnameh", "")
		require.NoError(t, err)
		assert.Equal(t, 0, report.Progress.CompletedCount)
		assert.Equal(t, calls, repository.historyCalls)
	})

	t.Run("episodes_flag_release_state", func(t *testing.T) {
		views, err := service.ListEpisodes(ctx, "shahnameh", "reader-1")
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.True(t, views[0].IsCompleted)
		assert.InDelta(t, 0.4, views[1].Progress, 1e-9)
		assert.False(t, views[2].IsReleased)
	})

	t.Run("next_is_first_unread", func(t *testing.T) {
		next, err := service.NextEpisode(ctx, "shahnameh", "reader-1")
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, "e2", next.ID)
	})

	t.Run("draft_is_not_found", func(t *testing.T) {
		_, err := service.GetSeriesProgress(ctx, "draft", "reader-1")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("empty_slug_is_rejected", func(t *testing.T) {
		_, err := service.NextEpisode(ctx, "", "")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}
