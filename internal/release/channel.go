// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/nevisa/internal/follow"
	"github.com/taibuivan/nevisa/pkg/slice"
)

// defaultConcurrency applies when a dispatcher is built with a non-positive limit.
const defaultConcurrency = 4

// # Delivery Channels

// Channel is a best-effort delivery path that runs after a release commits.
//
// In-app notifications are not a Channel: they are written inside the release
// transaction. Email is the stock implementation; push or webhooks plug in here.
type Channel interface {
	// Name identifies the channel in logs and pass results.
	Name() string

	// Accepts reports whether the follower should receive this channel at all.
	// Rejected followers do not count as attempts.
	Accepts(follower follow.Follower) bool

	// Deliver sends one message. The boolean reports provider-confirmed delivery.
	Deliver(ctx context.Context, follower follow.Follower, event Event) (bool, error)
}

// Dispatcher fans a release event out over one [Channel] with bounded concurrency.
//
// Every send is isolated: an error or panic is logged and counted as not
// delivered, and the remaining sends proceed.
type Dispatcher struct {
	channel     Channel
	concurrency int
	logger      *slog.Logger
}

// NewDispatcher constructs a [Dispatcher].
func NewDispatcher(channel Channel, concurrency int, logger *slog.Logger) *Dispatcher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Dispatcher{channel: channel, concurrency: concurrency, logger: logger}
}

// Name returns the underlying channel's name.
func (dispatcher *Dispatcher) Name() string {
	return dispatcher.channel.Name()
}

/*
Dispatch delivers event to every accepted follower.

Parameters:
  - context: context.Context
  - event: Event
  - followers: []follow.Follower

Returns:
  - Tally: attempts (accepted followers) and confirmed deliveries
*/
func (dispatcher *Dispatcher) Dispatch(context context.Context, event Event, followers []follow.Follower) Tally {
	recipients := slice.Filter(followers, dispatcher.channel.Accepts)
	if len(recipients) == 0 {
		return Tally{}
	}

	var delivered atomic.Int64

	group := new(errgroup.Group)
	group.SetLimit(dispatcher.concurrency)

	for _, recipient := range recipients {
		group.Go(func() error {
			if dispatcher.send(context, recipient, event) {
				delivered.Add(1)
			}
			return nil
		})
	}

	// Sends never return errors to the group.
	_ = group.Wait()

	return Tally{Attempts: len(recipients), Delivered: int(delivered.Load())}
}

// send performs one isolated delivery.
func (dispatcher *Dispatcher) send(context context.Context, recipient follow.Follower, event Event) (delivered bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			dispatcher.logger.Error("release_delivery_panic",
				slog.String("channel", dispatcher.channel.Name()),
				slog.String("episode_id", event.Episode.ID),
				slog.String("user_id", recipient.UserID),
				slog.String("panic", fmt.Sprint(recovered)),
			)
			delivered = false
		}
	}()

	ok, err := dispatcher.channel.Deliver(context, recipient, event)
	if err != nil {
		dispatcher.logger.Warn("release_delivery_failed",
			slog.String("channel", dispatcher.channel.Name()),
			slog.String("episode_id", event.Episode.ID),
			slog.String("user_id", recipient.UserID),
			slog.Any("error", err),
		)
		return false
	}

	return ok
}
