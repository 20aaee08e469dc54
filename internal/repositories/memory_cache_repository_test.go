package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := &MemoryCacheRepository{items: make(map[string]memoryCacheItem), now: func() time.Time { return now }}

	_, err := cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	v, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	t.Run("ключ истекает", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		_, err := cache.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("счётчик", func(t *testing.T) {
		n, err := cache.Incr(ctx, "gen")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		n, err = cache.Incr(ctx, "gen")
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		require.NoError(t, cache.Set(ctx, "text", "abc", 0))
		_, err = cache.Incr(ctx, "text")
		assert.Error(t, err)
	})

	t.Run("удаление", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "a", []byte("bytes"), 0))
		v, err := cache.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "bytes", v)

		require.NoError(t, cache.Del(ctx, "a", "gen"))
		_, err = cache.Get(ctx, "a")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
