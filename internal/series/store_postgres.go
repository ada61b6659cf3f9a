// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package series provides the PostgreSQL implementation for the series read side.

The series row and its follower count are fetched in a single round-trip; episodes
are joined with their article metadata in a second query. Reading history lookups
build their IN-list with squirrel so the placeholder count follows the episode count.
*/
package series

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/nevisa/internal/platform/apperr"
	"github.com/taibuivan/nevisa/internal/platform/database/schema"
)

// psql builds statements with PostgreSQL's $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// # PostgreSQL Repositories

// seriesRepository implements the [SeriesRepository] interface using pgx.
type seriesRepository struct {
	pool *pgxpool.Pool
}

// NewSeriesRepository constructs a PostgreSQL backed series store.
func NewSeriesRepository(pool *pgxpool.Pool) SeriesRepository {
	return &seriesRepository{pool: pool}
}

/*
FindPublishedBySlug loads the series header, follower count and ordered episodes.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Series: Hydrated aggregate
  - error: apperr.NotFound when the slug is unknown or the series is not PUBLISHED
*/
func (repository *seriesRepository) FindPublishedBySlug(context context.Context, slug string) (*Series, error) {

	// Series header with a correlated follower count
	query := fmt.Sprintf(`
		SELECT
			s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
			(SELECT COUNT(*) FROM %s f WHERE f.%s = s.%s) AS followercount
		FROM %s s
		WHERE s.%s = $1 AND s.%s = $2
	`,
		schema.PublishingSeries.ID, schema.PublishingSeries.Slug, schema.PublishingSeries.Title,
		schema.PublishingSeries.Subtitle, schema.PublishingSeries.Description, schema.PublishingSeries.CoverURL,
		schema.PublishingSeries.Status, schema.PublishingSeries.CuratorID,
		schema.PublishingSeries.CreatedAt, schema.PublishingSeries.UpdatedAt,
		schema.PublishingSeriesFollow.Table, schema.PublishingSeriesFollow.SeriesID, schema.PublishingSeries.ID,
		schema.PublishingSeries.Table,
		schema.PublishingSeries.Slug, schema.PublishingSeries.Status,
	)

	var series Series
	err := repository.pool.QueryRow(context, query, slug, StatusPublished).Scan(
		&series.ID,
		&series.Slug,
		&series.Title,
		&series.Subtitle,
		&series.Description,
		&series.CoverURL,
		&series.Status,
		&series.CuratorID,
		&series.CreatedAt,
		&series.UpdatedAt,
		&series.FollowerCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Series")
		}
		return nil, fmt.Errorf("postgres: failed to find series by slug: %w", err)
	}

	episodes, err := repository.listEpisodes(context, series.ID)
	if err != nil {
		return nil, err
	}
	series.Episodes = episodes

	return &series, nil
}

// listEpisodes returns a series' episodes joined with their articles, ordered ascending.
func (repository *seriesRepository) listEpisodes(context context.Context, seriesID string) ([]*Episode, error) {
	const query = `
		SELECT
			e.id, e.seriesid, e.sortorder, e.releaseat, e.releasedat, e.notifiedat,
			a.id, a.title, a.slug, a.authorid
		FROM publishing.seriesepisode e
		JOIN publishing.article a ON a.id = e.articleid
		WHERE e.seriesid = $1
		ORDER BY e.sortorder ASC, e.createdat ASC
	`

	rows, err := repository.pool.Query(context, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list episodes: %w", err)
	}
	defer rows.Close()

	episodes := []*Episode{}
	for rows.Next() {
		var episode Episode
		err := rows.Scan(
			&episode.ID,
			&episode.SeriesID,
			&episode.Order,
			&episode.ReleaseAt,
			&episode.ReleasedAt,
			&episode.NotifiedAt,
			&episode.Article.ID,
			&episode.Article.Title,
			&episode.Article.Slug,
			&episode.Article.AuthorID,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan episode: %w", err)
		}
		episodes = append(episodes, &episode)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate episodes: %w", err)
	}

	return episodes, nil
}

/*
ReadingHistory loads progress rows for one reader restricted to the given articles.
*/
func (repository *seriesRepository) ReadingHistory(context context.Context, userID string, articleIDs []string) (History, error) {
	history := History{}
	if userID == "" || len(articleIDs) == 0 {
		return history, nil
	}

	query, args, err := psql.
		Select(schema.LibraryReadingHistory.ArticleID, schema.LibraryReadingHistory.Progress).
		From(schema.LibraryReadingHistory.Table).
		Where(sq.Eq{
			schema.LibraryReadingHistory.UserID:    userID,
			schema.LibraryReadingHistory.ArticleID: articleIDs,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to build reading history query: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to load reading history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID string
		var progress float64
		if err := rows.Scan(&articleID, &progress); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan reading history: %w", err)
		}
		history[articleID] = progress
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate reading history: %w", err)
	}

	return history, nil
}
