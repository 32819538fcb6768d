package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio/internal/ports"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	var got []string
	assert.ErrorIs(t, cache.Get(ctx, "repos", &got), ports.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "repos", []string{"a", "b"}, time.Minute))
	require.NoError(t, cache.Get(ctx, "repos", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	now = now.Add(time.Minute)
	assert.ErrorIs(t, cache.Get(ctx, "repos", &got), ports.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "forever", 1, 0))
	now = now.Add(24 * time.Hour)
	var n int
	require.NoError(t, cache.Get(ctx, "forever", &n))
	assert.Equal(t, 1, n)

	require.NoError(t, cache.Delete(ctx, "forever"))
	assert.ErrorIs(t, cache.Get(ctx, "forever", &n), ports.ErrCacheMiss)
	assert.NoError(t, cache.HealthCheck(ctx))
}
