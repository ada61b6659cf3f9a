// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/nevisa/pkg/uuid"
)

// Lease keeps concurrent workers from running overlapping passes.
//
// It is an optimisation only: correctness rests on the compare-and-set in
// [Repository.Release], so a lost or expired lease never causes a double release.
type Lease interface {
	// Acquire returns a release function when the lease was obtained, or
	// ok=false when another holder has it.
	Acquire(ctx context.Context) (unlock func(context.Context) error, ok bool, err error)
}

// unlockTimeout bounds a lease release. It runs detached from the pass context,
// which may already be done when the pass ends.
const unlockTimeout = 5 * time.Second

// releaseLease calls unlock on a context that survives ctx's cancellation.
func releaseLease(ctx context.Context, unlock func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
	defer cancel()
	return unlock(ctx)
}

// compareAndDelete removes the key only if it still holds our token.
var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease is a [Lease] backed by a single Redis key with a TTL.
type RedisLease struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisLease constructs a [RedisLease].
func NewRedisLease(client *redis.Client, key string, ttl time.Duration) *RedisLease {
	return &RedisLease{client: client, key: key, ttl: ttl}
}

// Acquire implements [Lease].
func (lease *RedisLease) Acquire(ctx context.Context) (func(context.Context) error, bool, error) {
	token := uuid.New()

	ok, err := lease.client.SetNX(ctx, lease.key, token, lease.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis: failed to acquire lease %s: %w", lease.key, err)
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		if err := compareAndDelete.Run(ctx, lease.client, []string{lease.key}, token).Err(); err != nil {
			return fmt.Errorf("redis: failed to release lease %s: %w", lease.key, err)
		}
		return nil
	}

	return unlock, true, nil
}
