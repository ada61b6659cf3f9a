// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package series provides the domain models for multi-part content series.

A [Series] is an ordered collection of articles; each position in that order is an
[Episode] that links exactly one article and carries its release timing.

# Core Responsibility

  - Visibility: Only PUBLISHED series are exposed to the read paths.
  - Release Rule: [Episode.IsReleased] derives visibility from the scheduled and recorded timestamps.
  - Progress: The aggregator in progress.go turns reading history into completion state.

Episodes are assigned by the editorial workflow; this package only reads them.
*/
package series

import "time"

// # Series Aggregate

// Status is the editorial lifecycle state of a series.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// Series is a curated, ordered collection of articles.
type Series struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	Status      Status     `json:"status"`
	CuratorID   *string    `json:"curator_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Episodes    []*Episode `json:"episodes,omitempty"`

	// FollowerCount is hydrated by the read path, zero elsewhere.
	FollowerCount int `json:"follower_count"`
}

// IsPublished reports whether the series is visible to readers.
func (s *Series) IsPublished() bool {
	return s.Status == StatusPublished
}

// # Episode Link

// Article is the slice of article metadata the series pipeline needs.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	AuthorID string `json:"author_id"`
}

// Episode joins a [Series] to one [Article] at a given position.
type Episode struct {
	ID       string  `json:"id"`
	SeriesID string  `json:"series_id"`
	Article  Article `json:"article"`
	Order    int     `json:"order"`

	// ReleaseAt is the scheduled time; nil means visible immediately.
	ReleaseAt *time.Time `json:"release_at,omitempty"`

	// ReleasedAt is write-once and only ever set by the release scheduler.
	ReleasedAt *time.Time `json:"released_at,omitempty"`

	// NotifiedAt is set in the same transaction as ReleasedAt.
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
}

// IsReleased reports whether the episode is visible at now.
//
// An episode is released once the scheduler recorded it, when it was never
// scheduled, or when its scheduled time has passed. Only the first case goes
// through the scheduler; the others never produce a release notification.
func (e *Episode) IsReleased(now time.Time) bool {
	if e.ReleasedAt != nil {
		return true
	}
	if e.ReleaseAt == nil {
		return true
	}
	return !e.ReleaseAt.After(now)
}

