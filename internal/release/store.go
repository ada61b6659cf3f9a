// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"time"

	"github.com/taibuivan/nevisa/internal/follow"
)

// ComposeFunc builds the in-app notification for one follower.
type ComposeFunc func(follower follow.Follower) Notification

// # Repository Interfaces

// Repository is the persistence boundary of the release scheduler.
type Repository interface {
	// ListDue returns up to limit episodes due at now, ordered by (releaseAt, id)
	// and strictly after the cursor when one is given.
	ListDue(ctx context.Context, now time.Time, after *Cursor, limit int) ([]DueEpisode, error)

	// Release records the episode as released at now and inserts one
	// notification per follower in a single transaction. When the episode was
	// already recorded the transaction is a no-op and Outcome.Released is false.
	Release(ctx context.Context, due DueEpisode, now time.Time, compose ComposeFunc) (*Outcome, error)
}
