// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/nevisa/internal/platform/apperr"
	"github.com/taibuivan/nevisa/internal/platform/database/schema"
	"github.com/taibuivan/nevisa/internal/platform/dberr"
)

// Querier is the read surface shared by [pgxpool.Pool] and [pgx.Tx].
//
// It lets the release transaction read followers through the same query as the
// registry does.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// # PostgreSQL Repositories

// PostgresRepository implements the [FollowRepository] interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

var _ FollowRepository = (*PostgresRepository)(nil)

// NewPostgresRepository constructs a PostgreSQL backed follow store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Upsert creates or updates a follow in a single statement.

Description: ON CONFLICT on the (userid, seriesid) key makes repeated calls
collapse onto one row. A nil preference keeps whatever is stored (or the column
default on insert).
*/
func (repository *PostgresRepository) Upsert(context context.Context, seriesID, userID string, notifyByEmail *bool) (*Follow, error) {
	const query = `
		INSERT INTO publishing.seriesfollow (userid, seriesid, notifybyemail, createdat)
		VALUES ($1, $2, COALESCE($3::boolean, TRUE), NOW())
		ON CONFLICT (userid, seriesid) DO UPDATE
		SET notifybyemail = COALESCE($3::boolean, publishing.seriesfollow.notifybyemail)
		RETURNING userid, seriesid, notifybyemail, createdat
	`

	var follow Follow
	err := repository.db.QueryRow(context, query, userID, seriesID, notifyByEmail).Scan(
		&follow.UserID, &follow.SeriesID, &follow.NotifyByEmail, &follow.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "upsert_follow")
	}

	return &follow, nil
}

/*
Delete removes the relationship; a missing row is not an error.
*/
func (repository *PostgresRepository) Delete(context context.Context, seriesID, userID string) (bool, error) {
	const query = `DELETE FROM publishing.seriesfollow WHERE userid = $1 AND seriesid = $2`

	result, err := repository.db.Exec(context, query, userID, seriesID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_follow")
	}

	return result.RowsAffected() > 0, nil
}

/*
UpdatePreference updates an existing follow and reports NotFound otherwise.
*/
func (repository *PostgresRepository) UpdatePreference(context context.Context, seriesID, userID string, notifyByEmail bool) (*Follow, error) {
	const query = `
		UPDATE publishing.seriesfollow
		SET notifybyemail = $3
		WHERE userid = $1 AND seriesid = $2
		RETURNING userid, seriesid, notifybyemail, createdat
	`

	var follow Follow
	err := repository.db.QueryRow(context, query, userID, seriesID, notifyByEmail).Scan(
		&follow.UserID, &follow.SeriesID, &follow.NotifyByEmail, &follow.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Follow")
		}
		return nil, dberr.Wrap(err, "update_follow_preference")
	}

	return &follow, nil
}

/*
ListFollowing pages through the series a reader follows.
*/
func (repository *PostgresRepository) ListFollowing(context context.Context, userID string, limit, offset int) ([]*FollowedSeries, int, error) {
	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, f.%s, f.%s, COUNT(*) OVER() AS total_count
		FROM %s f
		JOIN %s s ON s.%s = f.%s
		WHERE f.%s = $1
		ORDER BY f.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.PublishingSeries.ID, schema.PublishingSeries.Slug, schema.PublishingSeries.Title,
		schema.PublishingSeriesFollow.NotifyByEmail, schema.PublishingSeriesFollow.CreatedAt,
		schema.PublishingSeriesFollow.Table,
		schema.PublishingSeries.Table, schema.PublishingSeries.ID, schema.PublishingSeriesFollow.SeriesID,
		schema.PublishingSeriesFollow.UserID,
		schema.PublishingSeriesFollow.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list follows: %w", err)
	}
	defer rows.Close()

	items := []*FollowedSeries{}
	var total int
	for rows.Next() {
		var item FollowedSeries
		if err := rows.Scan(&item.SeriesID, &item.Slug, &item.Title, &item.NotifyByEmail, &item.FollowedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan follow: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate follows: %w", err)
	}

	return items, total, nil
}

/*
QueryFollowers reads the follower set of a series through any [Querier].

Description: Joins users.account for the address and display name used by the
email channel. Followers without an email on file come back with an empty Email.
*/
func QueryFollowers(context context.Context, querier Querier, seriesID string) ([]Follower, error) {
	query := fmt.Sprintf(`
		SELECT f.%s, COALESCE(u.%s, ''), COALESCE(u.%s, ''), f.%s
		FROM %s f
		JOIN %s u ON u.%s = f.%s
		WHERE f.%s = $1
		ORDER BY f.%s ASC
	`,
		schema.PublishingSeriesFollow.UserID, schema.UserAccount.DisplayName, schema.UserAccount.Email,
		schema.PublishingSeriesFollow.NotifyByEmail,
		schema.PublishingSeriesFollow.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.PublishingSeriesFollow.UserID,
		schema.PublishingSeriesFollow.SeriesID,
		schema.PublishingSeriesFollow.CreatedAt,
	)

	rows, err := querier.Query(context, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list followers: %w", err)
	}
	defer rows.Close()

	var followers []Follower
	for rows.Next() {
		var follower Follower
		if err := rows.Scan(&follower.UserID, &follower.Name, &follower.Email, &follower.NotifyByEmail); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan follower: %w", err)
		}
		followers = append(followers, follower)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate followers: %w", err)
	}

	return followers, nil
}
