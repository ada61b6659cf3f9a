// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import "context"

// # Series Data Access

// SeriesRepository defines the read contract the progress views depend on.
type SeriesRepository interface {

	/*
		FindPublishedBySlug returns a PUBLISHED series with its episodes and follower count.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Series: Hydrated series, episodes ordered ascending
		  - error: apperr.NotFound if missing or not published
	*/
	FindPublishedBySlug(context context.Context, slug string) (*Series, error)

	/*
		ReadingHistory loads a reader's progress for the given articles.

		Parameters:
		  - context: context.Context
		  - userID: string (Reader)
		  - articleIDs: []string

		Returns:
		  - History: Progress keyed by article ID, absent articles omitted
		  - error: Retrieval failure
	*/
	ReadingHistory(context context.Context, userID string, articleIDs []string) (History, error)
}
