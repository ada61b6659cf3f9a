// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package release publishes scheduled series episodes and notifies their followers.

# Pipeline

  - Discovery: Episodes whose release time has passed but which were never recorded.
  - Commit: One transaction per episode flips releasedAt/notifiedAt with a
    compare-and-set and writes one in-app notification per follower.
  - Delivery: After commit, followers who opted in receive an email. Email is
    best-effort and never rolls back the release.

A committed release is final. Passes that race on the same episode resolve
through the compare-and-set, so exactly one of them fans out.
*/
package release

import (
	"time"

	"github.com/taibuivan/nevisa/internal/follow"
	"github.com/taibuivan/nevisa/internal/series"
)

// NotificationTypeSeriesRelease tags in-app notifications produced by a release.
const NotificationTypeSeriesRelease = "SERIES_RELEASE"

// # Domain Types

// DueEpisode is an episode ready to be released together with its parent series.
type DueEpisode struct {
	Series  *series.Series
	Episode *series.Episode
}

// Cursor is the keyset position of the last due episode a pass has seen.
type Cursor struct {
	ReleaseAt time.Time
	EpisodeID string
}

// Event describes a committed release to the delivery channels.
type Event struct {
	Series     *series.Series
	Episode    *series.Episode
	ReleasedAt time.Time
	EpisodeURL string
}

// Notification is an in-app notification row.
type Notification struct {
	ID        string
	Type      string
	Message   string
	UserID    string
	ActorID   *string
	ArticleID *string
	CreatedAt time.Time
}

// Outcome is what the release transaction committed for one episode.
type Outcome struct {
	// Released is false when another pass already recorded the episode.
	Released      bool
	Notifications int
	Followers     []follow.Follower
}

// # Pass Accounting

// Tally counts delivery attempts on one channel.
type Tally struct {
	Attempts  int `json:"attempts"`
	Delivered int `json:"delivered"`
}

// Add returns the sum of two tallies.
func (t Tally) Add(other Tally) Tally {
	return Tally{Attempts: t.Attempts + other.Attempts, Delivered: t.Delivered + other.Delivered}
}

// Result summarises one release pass.
type Result struct {
	Released       int `json:"released"`
	Notifications  int `json:"notifications"`
	EmailAttempts  int `json:"email_attempts"`
	EmailDelivered int `json:"email_delivered"`

	// AlreadyHandled counts episodes another pass committed first.
	AlreadyHandled int `json:"already_handled"`

	// Skipped is set when another process holds the pass lease.
	Skipped bool `json:"skipped"`

	// Channels holds tallies for delivery channels other than email.
	Channels map[string]Tally `json:"channels,omitempty"`
}
