// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/nevisa/internal/follow"
	"github.com/taibuivan/nevisa/internal/platform/database/schema"
	"github.com/taibuivan/nevisa/internal/series"
)

// insertChunk caps the rows of one multi-row INSERT so the bind count stays
// well below PostgreSQL's 65535 parameter limit.
const insertChunk = 1000

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// # PostgreSQL Repositories

// DB is the part of *pgxpool.Pool the release store uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool DB
}

// NewPostgresRepository constructs a PostgreSQL backed release store.
func NewPostgresRepository(pool DB) Repository {
	return &postgresRepository{pool: pool}
}

/*
ListDue returns unreleased episodes whose scheduled time is at or before now.

Description: Pages by the (releaseat, id) keyset so a pass always moves forward,
even past episodes whose transaction keeps failing.

Parameters:
  - context: context.Context
  - now: time.Time
  - after: *Cursor (nil for the first page)
  - limit: int

Returns:
  - []DueEpisode: Episodes with their parent series, oldest schedule first
  - error: Storage failures
*/
func (repository *postgresRepository) ListDue(context context.Context, now time.Time, after *Cursor, limit int) ([]DueEpisode, error) {
	episode := schema.PublishingSeriesEpisode
	article := schema.PublishingArticle
	seriesTable := schema.PublishingSeries

	builder := psql.
		Select(
			"e."+episode.ID, "e."+episode.SeriesID, "e."+episode.SortOrder, "e."+episode.ReleaseAt,
			"a."+article.ID, "a."+article.Title, "a."+article.Slug, "a."+article.AuthorID,
			"s."+seriesTable.Slug, "s."+seriesTable.Title, "s."+seriesTable.Status, "s."+seriesTable.CuratorID,
		).
		From(episode.Table + " e").
		Join(fmt.Sprintf("%s a ON a.%s = e.%s", article.Table, article.ID, episode.ArticleID)).
		Join(fmt.Sprintf("%s s ON s.%s = e.%s", seriesTable.Table, seriesTable.ID, episode.SeriesID)).
		Where(sq.Eq{"e." + episode.ReleasedAt: nil}).
		Where(sq.NotEq{"e." + episode.ReleaseAt: nil}).
		Where(sq.LtOrEq{"e." + episode.ReleaseAt: now}).
		OrderBy("e."+episode.ReleaseAt+" ASC", "e."+episode.ID+" ASC").
		Limit(uint64(limit))

	if after != nil {
		builder = builder.Where(
			sq.Expr(fmt.Sprintf("(e.%s, e.%s) > (?, ?)", episode.ReleaseAt, episode.ID), after.ReleaseAt, after.EpisodeID),
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to build due episodes query: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list due episodes: %w", err)
	}
	defer rows.Close()

	var due []DueEpisode
	for rows.Next() {
		var (
			parent  series.Series
			current series.Episode
		)
		err := rows.Scan(
			&current.ID, &current.SeriesID, &current.Order, &current.ReleaseAt,
			&current.Article.ID, &current.Article.Title, &current.Article.Slug, &current.Article.AuthorID,
			&parent.Slug, &parent.Title, &parent.Status, &parent.CuratorID,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan due episode: %w", err)
		}
		parent.ID = current.SeriesID
		due = append(due, DueEpisode{Series: &parent, Episode: &current})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate due episodes: %w", err)
	}

	return due, nil
}

/*
Release commits one episode's release and its in-app fan-out atomically.

Description: The UPDATE only matches while releasedat is still NULL and the
schedule is still due, so of two racing passes exactly one sees a row affected.
An episode rescheduled into the future after ListDue is left alone. The loser commits nothing and
reports Released=false. Followers are read inside the same transaction, which
makes the notified set the follower set at commit time.

Parameters:
  - context: context.Context
  - due: DueEpisode
  - now: time.Time (written to both releasedat and notifiedat)
  - compose: ComposeFunc

Returns:
  - *Outcome: Committed counts and the follower snapshot for email delivery
  - error: Any failure; the transaction is rolled back and the episode stays due
*/
func (repository *postgresRepository) Release(context context.Context, due DueEpisode, now time.Time, compose ComposeFunc) (*Outcome, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin release transaction: %w", err)
	}
	defer tx.Rollback(context)

	// 1. Compare-and-set on the write-once timestamp
	claim := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $2
		WHERE %s = $1 AND %s <= $2 AND %s IS NULL
	`,
		schema.PublishingSeriesEpisode.Table,
		schema.PublishingSeriesEpisode.ReleasedAt, schema.PublishingSeriesEpisode.NotifiedAt,
		schema.PublishingSeriesEpisode.ID, schema.PublishingSeriesEpisode.ReleaseAt,
		schema.PublishingSeriesEpisode.ReleasedAt,
	)

	result, err := tx.Exec(context, claim, due.Episode.ID, now)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to mark episode released: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &Outcome{Released: false}, nil
	}

	// 2. Follower snapshot at commit time
	followers, err := follow.QueryFollowers(context, tx, due.Series.ID)
	if err != nil {
		return nil, err
	}

	// 3. In-app notifications in bounded multi-row inserts
	notifications := make([]Notification, 0, len(followers))
	for _, follower := range followers {
		notifications = append(notifications, compose(follower))
	}

	for start := 0; start < len(notifications); start += insertChunk {
		end := min(start+insertChunk, len(notifications))

		insert := psql.Insert(schema.SocialNotification.Table).Columns(schema.SocialNotification.Columns()...)
		for _, notification := range notifications[start:end] {
			insert = insert.Values(
				notification.ID, notification.Type, notification.Message, notification.UserID,
				notification.ActorID, notification.ArticleID, notification.CreatedAt,
			)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to build notification insert: %w", err)
		}

		if _, err := tx.Exec(context, query, args...); err != nil {
			return nil, fmt.Errorf("postgres: failed to insert notifications: %w", err)
		}
	}

	if err := tx.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit release: %w", err)
	}

	return &Outcome{Released: true, Notifications: len(notifications), Followers: followers}, nil
}
