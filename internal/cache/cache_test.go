package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/pocketmark/api/internal/cache"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips values", func(t *testing.T) {
		c := cache.NewMemoryCache()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

		value, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("v"), value)

		require.NoError(t, c.Delete(ctx, "k"))
		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrKeyNotFound)
	})

	t.Run("expires entries", func(t *testing.T) {
		c := cache.NewMemoryCache()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrKeyNotFound)
	})
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	c := cache.Noop{}

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrKeyNotFound)
}
