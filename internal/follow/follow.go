// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package follow tracks which readers follow which series.

Each (user, series) pair is stored at most once and carries the reader's email
preference. The release scheduler reads the current follower set when it fans
out notifications; readers create and remove rows at any time.
*/
package follow

import (
	"net/mail"
	"strings"
	"time"
)

// Follow is the persisted relationship between a reader and a series.
type Follow struct {
	UserID        string    `json:"user_id"`
	SeriesID      string    `json:"series_id"`
	NotifyByEmail bool      `json:"notify_by_email"`
	CreatedAt     time.Time `json:"created_at"`
}

// Follower is a follow row joined with the reader's contact details.
type Follower struct {
	UserID        string
	Name          string
	Email         string
	NotifyByEmail bool
}

// HasUsableEmail reports whether an email can be addressed to the follower.
func (f Follower) HasUsableEmail() bool {
	address := strings.TrimSpace(f.Email)
	if address == "" {
		return false
	}
	_, err := mail.ParseAddress(address)
	return err == nil
}

// FollowedSeries is one entry of a reader's follow list.
type FollowedSeries struct {
	SeriesID      string    `json:"series_id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	NotifyByEmail bool      `json:"notify_by_email"`
	FollowedAt    time.Time `json:"followed_at"`
}
