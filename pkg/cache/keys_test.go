package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "bookrank:ranking:weekly:book:2024-07", Key("ranking", "weekly", "book", "2024-07"))
	assert.Equal(t, "bookrank:books", Key("books"))
}

func TestNoop_AlwaysMisses(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))

	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, v)
	assert.NoError(t, c.DeletePattern(ctx, Namespace+"*"))
}

func TestVersionedKey(t *testing.T) {
	assert.Equal(t, "bookrank:g0:books", VersionedKey(0, "books"))
	assert.Equal(t, "bookrank:g12:ranking:yearly:book:2024", VersionedKey(12, "ranking", "yearly", "book", "2024"))
}

func TestGeneration_NoopStaysAtZero(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()

	require.NoError(t, Invalidate(ctx, c))
	gen, err := Generation(ctx, c)
	require.NoError(t, err)
	assert.Zero(t, gen)
}
