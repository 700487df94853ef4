// file: internal/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) Cache {
	t.Helper()
	c := NewMemoryCache(DefaultConfig(), zap.NewNop())
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", time.Minute))

	val, ok := c.Get(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", "value", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok, "entry should expire after its TTL")
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "forever", "value", 0))

	val, ok := c.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "value", val)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	assert.False(t, c.Exists(ctx, "key"))
}

func TestMemoryCacheIncrement(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := c.Increment(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMemoryCacheIncrementResetsAfterWindow(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	got, err := c.Increment(ctx, "counter", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	time.Sleep(20 * time.Millisecond)

	got, err = c.Increment(ctx, "counter", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "an expired counter starts over at 1")
}

func TestNewSelectsProvider(t *testing.T) {
	c, err := New(&Config{Provider: "memory"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = New(nil, zap.NewNop())
	require.NoError(t, err, "nil config falls back to the memory provider")
	require.NoError(t, c.Close())

	_, err = New(&Config{Provider: "memcached"}, zap.NewNop())
	assert.Error(t, err)
}

func TestMemoryCacheHealth(t *testing.T) {
	c := newTestCache(t)
	assert.NoError(t, c.Health(context.Background()))
}
