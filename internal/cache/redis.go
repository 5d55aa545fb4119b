package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"perishables/internal/domain"
)

// DefaultStatsKey is the Redis hash holding every cached stats entry
const DefaultStatsKey = "perishables:stats"

// Redis is a StatsCache backed by one Redis hash. The whole hash expires
// after the TTL and is deleted on invalidation.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedis wraps an existing client
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, key: DefaultStatsKey, ttl: ttl}
}

// DialRedis connects to addr and checks it answers
func DialRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return NewRedis(client, ttl), nil
}

// WithKey returns a copy using a different hash key
func (r *Redis) WithKey(key string) *Redis {
	c := *r
	c.key = key
	return &c
}

// Get implements StatsCache
func (r *Redis) Get(ctx context.Context, today domain.Date, days int) (*domain.Stats, bool, error) {
	data, err := r.client.HGet(ctx, r.key, field(today, days)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached stats: %w", err)
	}

	var stats domain.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached stats: %w", err)
	}
	return &stats, true, nil
}

// Set implements StatsCache
func (r *Redis) Set(ctx context.Context, stats domain.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key, field(stats.AsOf, stats.WindowDays), data)
		pipe.Expire(ctx, r.key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache stats: %w", err)
	}
	return nil
}

// Invalidate implements StatsCache
func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("invalidate stats: %w", err)
	}
	return nil
}

// Close implements StatsCache
func (r *Redis) Close() error {
	return r.client.Close()
}
