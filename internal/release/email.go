// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/nevisa/internal/follow"
	"github.com/taibuivan/nevisa/internal/platform/mail"
)

// ChannelEmail is the name of the email delivery channel.
const ChannelEmail = "email"

// # Email Channel

// EmailChannel delivers release emails through a [mail.Transport].
type EmailChannel struct {
	transport mail.Transport
	limiter   *rate.Limiter
	timeout   time.Duration
}

// NewEmailChannel constructs an [EmailChannel].
//
// ratePerSecond bounds sends across all concurrent workers; zero disables the
// limit. timeout bounds each provider call; zero leaves it to the transport.
func NewEmailChannel(transport mail.Transport, ratePerSecond float64, timeout time.Duration) *EmailChannel {
	limit := rate.Inf
	burst := 1
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
		burst = max(1, int(ratePerSecond))
	}

	return &EmailChannel{
		transport: transport,
		limiter:   rate.NewLimiter(limit, burst),
		timeout:   timeout,
	}
}

// Name implements [Channel].
func (channel *EmailChannel) Name() string {
	return ChannelEmail
}

// Accepts implements [Channel]: only opted-in followers with a usable address.
func (channel *EmailChannel) Accepts(follower follow.Follower) bool {
	return follower.NotifyByEmail && follower.HasUsableEmail()
}

// Deliver implements [Channel].
func (channel *EmailChannel) Deliver(ctx context.Context, follower follow.Follower, event Event) (bool, error) {
	if err := channel.limiter.Wait(ctx); err != nil {
		return false, err
	}

	if channel.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, channel.timeout)
		defer cancel()
	}

	receipt, err := channel.transport.SendSeriesReleaseEmail(ctx, mail.SeriesReleaseEmail{
		To:            strings.TrimSpace(follower.Email),
		RecipientName: follower.Name,
		SeriesTitle:   event.Series.Title,
		EpisodeTitle:  event.Episode.Article.Title,
		EpisodeURL:    event.EpisodeURL,
	})
	if err != nil {
		return false, err
	}

	return receipt.Delivered, nil
}

// # Email Dispatcher

// EmailDispatcher sends "new episode" emails after a release commits.
type EmailDispatcher struct {
	*Dispatcher
}

// NewEmailDispatcher constructs an [EmailDispatcher] over a mail transport.
func NewEmailDispatcher(transport mail.Transport, ratePerSecond float64, timeout time.Duration, concurrency int, logger *slog.Logger) *EmailDispatcher {
	channel := NewEmailChannel(transport, ratePerSecond, timeout)
	return &EmailDispatcher{Dispatcher: NewDispatcher(channel, concurrency, logger)}
}

/*
NotifyFollowersByEmail emails every follower who opted in and has an address.

Description: Best-effort. Failures are logged per recipient and never
propagate; there is no retry within or across passes.

Returns:
  - Tally: Attempts equal the eligible followers; Delivered counts provider confirmations
*/
func (dispatcher *EmailDispatcher) NotifyFollowersByEmail(context context.Context, event Event, followers []follow.Follower) Tally {
	return dispatcher.Dispatch(context, event, followers)
}
