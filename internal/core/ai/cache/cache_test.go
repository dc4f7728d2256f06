package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

func newTestManager(maxSize int) (*Manager, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(config.CacheConfig{
		Enabled: true,
		Backend: config.CacheBackendMemory,
		MaxSize: maxSize,
		TTL:     time.Minute,
	})
	m.now = func() time.Time { return now }
	return m, &now
}

func TestManagerGetSet(t *testing.T) {
	m, _ := newTestManager(10)
	defer m.Close()
	ctx := context.Background()

	_, err := m.Get(ctx, "quick pasta")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "quick pasta", `{"max_time": 20}`))
	val, err := m.Get(ctx, "quick pasta")
	require.NoError(t, err)
	assert.Equal(t, `{"max_time": 20}`, val)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}

func TestManagerExpiry(t *testing.T) {
	m, now := newTestManager(10)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "soup", "v"))
	*now = now.Add(2 * time.Minute)

	_, err := m.Get(ctx, "soup")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	assert.Equal(t, 0, m.Stats()["size"])
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	m, now := newTestManager(2)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	*now = now.Add(time.Second)
	require.NoError(t, m.Set(ctx, "b", "2"))

	// "a" 被讀取過，應淘汰 "b"
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestManagerOverwriteAtCapacity(t *testing.T) {
	m, _ := newTestManager(1)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "a", "2"))

	val, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
}

func TestNewDisabled(t *testing.T) {
	c, err := New(context.Background(), &config.Config{Cache: config.CacheConfig{Enabled: false}})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewMemory(t *testing.T) {
	c, err := New(context.Background(), &config.Config{Cache: config.CacheConfig{
		Enabled:         true,
		Backend:         config.CacheBackendMemory,
		MaxSize:         5,
		TTL:             time.Minute,
		CleanupInterval: time.Minute,
	}})
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()

	_, ok := c.(*Manager)
	assert.True(t, ok)
}

func TestRedisService(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis cache test")
	}
	ctx := context.Background()

	svc, err := NewService(ctx,
		config.CacheConfig{Enabled: true, Backend: config.CacheBackendRedis, TTL: time.Minute},
		config.RedisConfig{Addr: addr, Prefix: "recipe-finder-test:"},
	)
	require.NoError(t, err)
	defer svc.Close()

	prompt := "redis test " + time.Now().String()
	_, err = svc.Get(ctx, prompt)
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, svc.Set(ctx, prompt, `{"min_protein": 30}`))
	val, err := svc.Get(ctx, prompt)
	require.NoError(t, err)
	assert.Equal(t, `{"min_protein": 30}`, val)
}
