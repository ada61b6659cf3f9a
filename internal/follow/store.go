// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import "context"

// # Follow Data Access

// FollowRepository defines the data access contract for series follows.
type FollowRepository interface {

	/*
		Upsert creates the follow if absent, otherwise updates notifyByEmail when provided.

		Parameters:
		  - context: context.Context
		  - seriesID: string (Target)
		  - userID: string (Actor)
		  - notifyByEmail: *bool (nil keeps the stored value, or the default on insert)

		Returns:
		  - *Follow: The row as stored after the upsert
		  - error: apperr.NotFound when the series or user does not exist
	*/
	Upsert(context context.Context, seriesID, userID string, notifyByEmail *bool) (*Follow, error)

	/*
		Delete removes the follow if it exists.

		Returns:
		  - bool: Whether a row was removed
		  - error: Storage failure
	*/
	Delete(context context.Context, seriesID, userID string) (bool, error)

	/*
		UpdatePreference changes notifyByEmail on an existing follow.

		Returns:
		  - *Follow: Updated row
		  - error: apperr.NotFound when the user does not follow the series
	*/
	UpdatePreference(context context.Context, seriesID, userID string, notifyByEmail bool) (*Follow, error)

	/*
		ListFollowing returns the series a reader follows, newest first.

		Returns:
		  - []*FollowedSeries: Page of follows
		  - int: Total follows of the reader
		  - error: Retrieval failure
	*/
	ListFollowing(context context.Context, userID string, limit, offset int) ([]*FollowedSeries, int, error)
}
