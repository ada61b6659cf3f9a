// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nevisa/internal/series"
	"github.com/taibuivan/nevisa/pkg/pointer"
)

var now = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func episode(id string, order int, releaseAt, releasedAt *time.Time) *series.Episode {
	return &series.Episode{
		ID:         "ep-" + id,
		SeriesID:   "series-1",
		Article:    series.Article{ID: id, Title: "Article " + id},
		Order:      order,
		ReleaseAt:  releaseAt,
		ReleasedAt: releasedAt,
	}
}

/*
TestEpisode_IsReleased covers the three ways an episode becomes visible.
*/
func TestEpisode_IsReleased(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		episode  *series.Episode
		released bool
	}{
		{"never_scheduled", episode("a", 1, nil, nil), true},
		{"scheduled_in_past", episode("a", 1, &past, nil), true},
		{"scheduled_exactly_now", episode("a", 1, &now, nil), true},
		{"scheduled_in_future", episode("a", 1, &future, nil), false},
		{"recorded_by_scheduler", episode("a", 1, &future, &past), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.released, tt.episode.IsReleased(now))
		})
	}
}

/*
TestComputeSeriesProgress checks counting over released episodes only.
*/
func TestComputeSeriesProgress(t *testing.T) {
	future := pointer.To(now.Add(24 * time.Hour))

	t.Run("counts_only_released", func(t *testing.T) {
		s := &series.Series{
			FollowerCount: 7,
			Episodes: []*series.Episode{
				episode("a", 1, nil, nil),
				episode("b", 2, nil, nil),
				episode("c", 3, nil, nil),
				episode("d", 4, future, nil),
			},
		}
		history := series.History{"a": 1.0, "b": 0.9, "c": 0.5, "d": 1.0}

		progress := series.ComputeSeriesProgress(s, history, now)

		assert.Equal(t, 3, progress.ArticleCount)
		assert.Equal(t, 7, progress.FollowerCount)
		assert.Equal(t, 2, progress.CompletedCount)
		assert.Equal(t, 67, progress.ProgressPercent)
	})

	t.Run("zero_released_is_zero_percent", func(t *testing.T) {
		s := &series.Series{Episodes: []*series.Episode{episode("a", 1, future, nil)}}

		progress := series.ComputeSeriesProgress(s, series.History{"a": 1.0}, now)

		assert.Equal(t, 0, progress.ArticleCount)
		assert.Equal(t, 0, progress.CompletedCount)
		assert.Equal(t, 0, progress.ProgressPercent)
	})

	t.Run("empty_series", func(t *testing.T) {
		progress := series.ComputeSeriesProgress(&series.Series{}, nil, now)
		assert.Equal(t, series.SeriesProgress{}, progress)
	})

	t.Run("rounds_half_up", func(t *testing.T) {
		s := &series.Series{Episodes: []*series.Episode{
			episode("a", 1, nil, nil),
			episode("b", 2, nil, nil),
			episode("c", 3, nil, nil),
			episode("d", 4, nil, nil),
			episode("e", 5, nil, nil),
			episode("f", 6, nil, nil),
			episode("g", 7, nil, nil),
			episode("h", 8, nil, nil),
		}}
		// 1/8 = 12.5%
		progress := series.ComputeSeriesProgress(s, series.History{"a": 0.95}, now)
		assert.Equal(t, 13, progress.ProgressPercent)
	})
}

/*
TestComputeEpisodeView verifies the progress join and completion threshold.
*/
func TestComputeEpisodeView(t *testing.T) {
	future := pointer.To(now.Add(time.Hour))
	history := series.History{"a": 0.89, "b": 0.9}

	tests := []struct {
		name      string
		episode   *series.Episode
		progress  float64
		completed bool
		released  bool
	}{
		{"below_threshold", episode("a", 1, nil, nil), 0.89, false, true},
		{"at_threshold", episode("b", 2, nil, nil), 0.9, true, true},
		{"absent_defaults_to_zero", episode("c", 3, future, nil), 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := series.ComputeEpisodeView(tt.episode, history, now)
			assert.Same(t, tt.episode, view.Episode)
			assert.InDelta(t, tt.progress, view.Progress, 1e-9)
			assert.Equal(t, tt.completed, view.IsCompleted)
			assert.Equal(t, tt.released, view.IsReleased)
		})
	}
}

/*
TestFindNextEpisode covers the continue-reading fallbacks.
*/
func TestFindNextEpisode(t *testing.T) {
	future := pointer.To(now.Add(time.Hour))
	a := episode("a", 1, nil, nil)
	b := episode("b", 2, nil, nil)
	c := episode("c", 3, future, nil)

	t.Run("first_unread_released", func(t *testing.T) {
		next := series.FindNextEpisode([]*series.Episode{a, b, c}, map[string]bool{"b": true}, now)
		require.NotNil(t, next)
		assert.Equal(t, a.ID, next.ID)
	})

	t.Run("all_read_falls_back_to_last_released", func(t *testing.T) {
		next := series.FindNextEpisode([]*series.Episode{a, b, c}, map[string]bool{"a": true, "b": true}, now)
		require.NotNil(t, next)
		assert.Equal(t, b.ID, next.ID)
	})

	t.Run("nothing_released", func(t *testing.T) {
		assert.Nil(t, series.FindNextEpisode([]*series.Episode{c}, nil, now))
		assert.Nil(t, series.FindNextEpisode(nil, nil, now))
	})

	t.Run("orders_by_position", func(t *testing.T) {
		next := series.FindNextEpisode([]*series.Episode{b, a}, map[string]bool{}, now)
		require.NotNil(t, next)
		assert.Equal(t, a.ID, next.ID)
	})
}

/*
TestHistory_ReadArticleIDs keeps only completed articles.
*/
func TestHistory_ReadArticleIDs(t *testing.T) {
	history := series.History{"a": 0.2, "b": 0.9, "c": 1}
	assert.Equal(t, map[string]bool{"b": true, "c": true}, history.ReadArticleIDs())
}
