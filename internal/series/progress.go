// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"math"
	"sort"
	"time"

	"github.com/taibuivan/nevisa/internal/platform/constants"
	"github.com/taibuivan/nevisa/pkg/slice"
)

// # Progress Aggregation
//
// Everything in this file is a pure function over a snapshot of release state
// and reading history. The snapshot may be stale; results feed presentation only.

// History maps an article ID to the reader's progress in [0,1].
type History map[string]float64

// Progress returns the recorded progress for an article, or 0 when absent.
func (h History) Progress(articleID string) float64 {
	return h[articleID]
}

// ReadArticleIDs returns the set of articles whose progress reached the completion threshold.
func (h History) ReadArticleIDs() map[string]bool {
	read := make(map[string]bool, len(h))
	for articleID, progress := range h {
		if isCompleted(progress) {
			read[articleID] = true
		}
	}
	return read
}

// SeriesProgress is the per-series completion summary for one reader.
type SeriesProgress struct {
	ArticleCount    int `json:"article_count"`
	FollowerCount   int `json:"follower_count"`
	CompletedCount  int `json:"completed_count"`
	ProgressPercent int `json:"progress_percent"`
}

// EpisodeView is an episode joined with one reader's progress.
type EpisodeView struct {
	Episode     *Episode `json:"episode"`
	Progress    float64  `json:"progress"`
	IsCompleted bool     `json:"is_completed"`
	IsReleased  bool     `json:"is_released"`
}

// ComputeSeriesProgress summarises how much of the released part of a series the reader finished.
//
// Unreleased episodes are excluded from both counts. A series with no released
// episodes reports 0 percent.
func ComputeSeriesProgress(series *Series, history History, now time.Time) SeriesProgress {
	result := SeriesProgress{FollowerCount: series.FollowerCount}

	for _, episode := range series.Episodes {
		if !episode.IsReleased(now) {
			continue
		}
		result.ArticleCount++
		if isCompleted(history.Progress(episode.Article.ID)) {
			result.CompletedCount++
		}
	}

	if result.ArticleCount > 0 {
		ratio := float64(result.CompletedCount) / float64(result.ArticleCount)
		result.ProgressPercent = int(math.Round(ratio * 100))
	}

	return result
}

// ComputeEpisodeView joins an episode with the reader's progress on its article.
func ComputeEpisodeView(episode *Episode, history History, now time.Time) EpisodeView {
	progress := history.Progress(episode.Article.ID)
	return EpisodeView{
		Episode:     episode,
		Progress:    progress,
		IsCompleted: isCompleted(progress),
		IsReleased:  episode.IsReleased(now),
	}
}

// FindNextEpisode picks the episode a reader should continue with.
//
// It returns the first released episode, in ascending order, whose article is
// not in readArticleIDs. When every released episode was read it falls back to
// the last released one. It returns nil when nothing is released yet.
func FindNextEpisode(episodes []*Episode, readArticleIDs map[string]bool, now time.Time) *Episode {
	released := slice.Filter(episodes, func(episode *Episode) bool {
		return episode.IsReleased(now)
	})
	if len(released) == 0 {
		return nil
	}

	// Filter returned a fresh slice, so sorting does not touch the caller's order.
	sort.SliceStable(released, func(i, j int) bool {
		return released[i].Order < released[j].Order
	})

	for _, episode := range released {
		if !readArticleIDs[episode.Article.ID] {
			return episode
		}
	}

	return released[len(released)-1]
}

func isCompleted(progress float64) bool {
	return progress >= constants.CompletionThreshold
}
