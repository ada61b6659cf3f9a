// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/nevisa/internal/platform/validate"
	"github.com/taibuivan/nevisa/pkg/slice"
)

const (
	FieldSlug = "slug"
)

// # Service Layer

// Service serves the reader-facing progress views of a series.
type Service struct {
	seriesRepo SeriesRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service] with its required repository.
func NewService(seriesRepo SeriesRepository, logger *slog.Logger) *Service {
	return &Service{
		seriesRepo: seriesRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// ProgressReport is a series header joined with one reader's completion summary.
type ProgressReport struct {
	Series   *Series        `json:"series"`
	Progress SeriesProgress `json:"progress"`
}

/*
GetSeriesProgress computes the reader's completion summary for a published series.

Parameters:
  - context: context.Context
  - slug: string
  - userID: string (empty for anonymous readers)

Returns:
  - *ProgressReport: Series header and summary
  - error: apperr.NotFound if the series is not visible
*/
func (service *Service) GetSeriesProgress(context context.Context, slug, userID string) (*ProgressReport, error) {
	series, history, err := service.load(context, slug, userID)
	if err != nil {
		return nil, err
	}

	return &ProgressReport{
		Series:   series,
		Progress: ComputeSeriesProgress(series, history, service.now()),
	}, nil
}

/*
ListEpisodes returns every episode of a published series joined with the reader's progress.

Unreleased episodes are included and flagged so clients can show a countdown.
*/
func (service *Service) ListEpisodes(context context.Context, slug, userID string) ([]EpisodeView, error) {
	series, history, err := service.load(context, slug, userID)
	if err != nil {
		return nil, err
	}

	now := service.now()
	return slice.Map(series.Episodes, func(episode *Episode) EpisodeView {
		return ComputeEpisodeView(episode, history, now)
	}), nil
}

/*
NextEpisode resolves the "continue reading" target for a reader.

Returns:
  - *Episode: nil when the series has no released episode yet
  - error: apperr.NotFound if the series is not visible
*/
func (service *Service) NextEpisode(context context.Context, slug, userID string) (*Episode, error) {
	series, history, err := service.load(context, slug, userID)
	if err != nil {
		return nil, err
	}

	return FindNextEpisode(series.Episodes, history.ReadArticleIDs(), service.now()), nil
}

// # Internal Helpers

// load fetches the series and, for signed-in readers, their history over its articles.
func (service *Service) load(context context.Context, slug, userID string) (*Series, History, error) {
	validator := &validate.Validator{}
	validator.Required(FieldSlug, slug)
	if slug != "" {
		validator.Slug(FieldSlug, slug)
	}
	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	series, err := service.seriesRepo.FindPublishedBySlug(context, slug)
	if err != nil {
		return nil, nil, err
	}

	if userID == "" {
		return series, History{}, nil
	}

	articleIDs := slice.Map(series.Episodes, func(episode *Episode) string {
		return episode.Article.ID
	})

	history, err := service.seriesRepo.ReadingHistory(context, userID, articleIDs)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Debug("series_history_loaded",
		slog.String("series_id", series.ID),
		slog.String("user_id", userID),
		slog.Int("entries", len(history)),
	)

	return series, history, nil
}
