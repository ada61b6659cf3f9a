// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"log/slog"

	"github.com/taibuivan/nevisa/internal/platform/validate"
)

const (
	FieldSeriesID = "series_id"
	FieldUserID   = "user_id"
)

// # Service Layer

// Service is the follow registry.
type Service struct {
	repo   FollowRepository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo FollowRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Follow subscribes a reader to a series.

Description: Idempotent. Repeating the call leaves exactly one row; the email
preference only changes when notifyByEmail is non-nil.

Parameters:
  - context: context.Context
  - seriesID: string (UUID)
  - userID: string (UUID)
  - notifyByEmail: *bool (optional)

Returns:
  - *Follow: Stored relationship
  - error: Validation, apperr.NotFound for an unknown series, or storage failures
*/
func (service *Service) Follow(context context.Context, seriesID, userID string, notifyByEmail *bool) (*Follow, error) {
	if err := validateKey(seriesID, userID); err != nil {
		return nil, err
	}

	follow, err := service.repo.Upsert(context, seriesID, userID, notifyByEmail)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_followed_series",
		slog.String("series_id", seriesID),
		slog.String("user_id", userID),
		slog.Bool("notify_by_email", follow.NotifyByEmail),
	)

	return follow, nil
}

/*
Unfollow removes a reader from a series' followers.

Description: Calling it for a non-follower is a no-op.
*/
func (service *Service) Unfollow(context context.Context, seriesID, userID string) error {
	if err := validateKey(seriesID, userID); err != nil {
		return err
	}

	removed, err := service.repo.Delete(context, seriesID, userID)
	if err != nil {
		return err
	}

	if removed {
		service.logger.Info("user_unfollowed_series",
			slog.String("series_id", seriesID),
			slog.String("user_id", userID),
		)
	}

	return nil
}

/*
SetNotificationPreference toggles email notifications for an existing follow.

Returns:
  - *Follow: Updated relationship
  - error: apperr.NotFound when the user does not follow the series
*/
func (service *Service) SetNotificationPreference(context context.Context, seriesID, userID string, notifyByEmail bool) (*Follow, error) {
	if err := validateKey(seriesID, userID); err != nil {
		return nil, err
	}

	follow, err := service.repo.UpdatePreference(context, seriesID, userID, notifyByEmail)
	if err != nil {
		return nil, err
	}

	service.logger.Info("follow_preference_updated",
		slog.String("series_id", seriesID),
		slog.String("user_id", userID),
		slog.Bool("notify_by_email", notifyByEmail),
	)

	return follow, nil
}

// ListFollowing pages through the series a reader follows.
func (service *Service) ListFollowing(context context.Context, userID string, limit, offset int) ([]*FollowedSeries, int, error) {
	return service.repo.ListFollowing(context, userID, limit, offset)
}

// # Internal Helpers

func validateKey(seriesID, userID string) error {
	validator := &validate.Validator{}
	validator.UUID(FieldSeriesID, seriesID)
	validator.UUID(FieldUserID, userID)
	return validator.Err()
}
