package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-ranking/pkg/cache"
)

// newTestRedis uses TEST_REDIS_ADDR and skips without it.
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping Redis test")
	}

	rc := NewRedisCache(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, rc.Connect(context.Background()))
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

type entry struct {
	Category   string `json:"category"`
	TotalSales int64  `json:"total_sales"`
}

func TestRedisCache_GetSet(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()
	key := cache.Key("test", uuid.NewString())
	t.Cleanup(func() { _ = rc.DeletePattern(ctx, key) })

	var got []entry
	found, err := rc.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := []entry{{Category: "Pub Y", TotalSales: 8}}
	require.NoError(t, rc.Set(ctx, key, want, time.Minute))

	found, err = rc.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestRedisCache_DeletePattern(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()
	prefix := cache.Key("test", uuid.NewString())

	for _, suffix := range []string{"a", "b", "c"} {
		require.NoError(t, rc.Set(ctx, prefix+":"+suffix, 1, time.Minute))
	}
	require.NoError(t, rc.DeletePattern(ctx, prefix+":*"))

	var v int
	for _, suffix := range []string{"a", "b", "c"} {
		found, err := rc.Get(ctx, prefix+":"+suffix, &v)
		require.NoError(t, err)
		assert.False(t, found)
	}
}

func TestRedisCache_IncrIsReadableAsGeneration(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()
	key := cache.Key("test", uuid.NewString())
	t.Cleanup(func() { _ = rc.DeletePattern(ctx, key) })

	n, err := rc.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = rc.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var got int64
	found, err := rc.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(2), got)
}
