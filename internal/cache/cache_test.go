package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perishables/internal/domain"
)

var today = domain.MustParseDate("2023-11-10")

func sampleStats(days int) domain.Stats {
	return domain.Stats{
		ItemCount:     5,
		TotalQuantity: 410,
		TotalValue:    decimal.RequireFromString("248"),
		ExpiringSoon:  2,
		WindowDays:    days,
		Categories:    []domain.CategoryCount{{CategoryID: 1, Name: "Citrus", Items: 1}},
		AsOf:          today,
	}
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c StatsCache = Nop{}
	require.NoError(t, c.Set(ctx, sampleStats(7)))
	_, ok, err := c.Get(ctx, today, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 11, 10, 12, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	_, ok, err := m.Get(ctx, today, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, sampleStats(7)))

	got, ok, err := m.Get(ctx, today, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 410, got.TotalQuantity)

	_, ok, _ = m.Get(ctx, today, 14)
	assert.False(t, ok, "different window is a different entry")
	_, ok, _ = m.Get(ctx, today.AddDays(1), 7)
	assert.False(t, ok, "different day is a different entry")

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, today, 7)
	assert.False(t, ok, "entry expired")

	require.NoError(t, m.Set(ctx, sampleStats(7)))
	require.NoError(t, m.Invalidate(ctx))
	_, ok, _ = m.Get(ctx, today, 7)
	assert.False(t, ok)
}

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedis_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	c := NewRedis(client, time.Minute).WithKey("perishables:test:stats")
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx, today, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, sampleStats(7)))

	got, ok, err := c.Get(ctx, today, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, got.ItemCount)
	assert.True(t, decimal.RequireFromString("248").Equal(got.TotalValue))
	assert.Equal(t, "2023-11-10", got.AsOf.String())
	assert.Len(t, got.Categories, 1)

	ttl, err := client.TTL(ctx, "perishables:test:stats").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx, today, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDialRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DialRedis(ctx, "127.0.0.1:1", time.Minute)
	assert.Error(t, err)
}

func TestRedis_WithKey(t *testing.T) {
	base := NewRedis(nil, time.Minute)
	scoped := base.WithKey("shop-2:stats")

	assert.Equal(t, DefaultStatsKey, base.key)
	assert.Equal(t, "shop-2:stats", scoped.key)
	assert.Equal(t, base.ttl, scoped.ttl)
}
