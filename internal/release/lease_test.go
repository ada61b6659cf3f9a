// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nevisa/internal/platform/constants"
	"github.com/taibuivan/nevisa/internal/release"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

/*
TestRedisLease verifies mutual exclusion and token-checked release.
*/
func TestRedisLease(t *testing.T) {
	ctx := context.Background()

	t.Run("exclusive_until_unlocked", func(t *testing.T) {
		_, client := newRedis(t)
		lease := release.NewRedisLease(client, constants.RedisKeyReleaseLease, time.Minute)

		unlock, ok, err := lease.Acquire(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = lease.Acquire(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, unlock(ctx))

		_, ok, err = lease.Acquire(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired_holder_cannot_release_successor", func(t *testing.T) {
		server, client := newRedis(t)
		lease := release.NewRedisLease(client, constants.RedisKeyReleaseLease, time.Minute)

		staleUnlock, ok, err := lease.Acquire(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		server.FastForward(2 * time.Minute)

		_, ok, err = lease.Acquire(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, staleUnlock(ctx))
		assert.True(t, server.Exists(constants.RedisKeyReleaseLease))
	})

	t.Run("backend_down_is_an_error", func(t *testing.T) {
		server, client := newRedis(t)
		server.Close()

		_, ok, err := release.NewRedisLease(client, constants.RedisKeyReleaseLease, time.Minute).Acquire(ctx)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
