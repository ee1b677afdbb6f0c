package levelstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttlSeconds int) (*RedisLevelStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisLevelStore(client, ttlSeconds)
	require.NoError(t, err)
	return store, mr
}

func TestRedisLevelStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing level", func(t *testing.T) {
		store, _ := newTestStore(t, 60)

		level, found, err := store.Level(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, level)
	})

	t.Run("save and read back", func(t *testing.T) {
		store, _ := newTestStore(t, 60)
		id := uuid.New()

		require.NoError(t, store.SaveLevel(ctx, id, 7))
		level, found, err := store.Level(ctx, id)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 7, level)
	})

	t.Run("best level only grows", func(t *testing.T) {
		store, _ := newTestStore(t, 60)
		id := uuid.New()

		require.NoError(t, store.SaveLevel(ctx, id, 9))
		require.NoError(t, store.SaveLevel(ctx, id, 4))

		level, _, err := store.Level(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 4, level)

		best, err := store.BestLevel(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 9, best)
	})

	t.Run("levels expire", func(t *testing.T) {
		store, mr := newTestStore(t, 60)
		id := uuid.New()

		require.NoError(t, store.SaveLevel(ctx, id, 3))
		mr.FastForward(61 * time.Second)

		_, found, err := store.Level(ctx, id)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("corrupt value", func(t *testing.T) {
		store, mr := newTestStore(t, 60)
		id := uuid.New()
		mr.HSet(store.key(id), levelField, "not-a-number")

		_, _, err := store.Level(ctx, id)
		assert.Error(t, err)
	})
}
