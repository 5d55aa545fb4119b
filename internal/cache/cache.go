// Package cache holds computed inventory statistics between writes.
//
// Stats are keyed by calendar day and expiring window because both change
// the result. Any write to the inventory invalidates every entry.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"perishables/internal/domain"
)

// StatsCache stores computed stats
type StatsCache interface {
	// Get returns the cached stats, or ok=false on a miss
	Get(ctx context.Context, today domain.Date, days int) (stats *domain.Stats, ok bool, err error)
	Set(ctx context.Context, stats domain.Stats) error
	// Invalidate drops every cached entry
	Invalidate(ctx context.Context) error
	Close() error
}

// field names one cache entry
func field(today domain.Date, days int) string {
	return fmt.Sprintf("%s/%d", today, days)
}

// Nop is a StatsCache that never hits
type Nop struct{}

func (Nop) Get(context.Context, domain.Date, int) (*domain.Stats, bool, error) {
	return nil, false, nil
}
func (Nop) Set(context.Context, domain.Stats) error { return nil }
func (Nop) Invalidate(context.Context) error        { return nil }
func (Nop) Close() error                            { return nil }

// Memory is an in-process StatsCache with a TTL, used when no Redis is
// configured for a single server process
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	stats   domain.Stats
	expires time.Time
}

// NewMemory creates an in-process cache
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Get implements StatsCache
func (m *Memory) Get(_ context.Context, today domain.Date, days int) (*domain.Stats, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := field(today, days)
	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(entry.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	stats := entry.stats
	return &stats, true, nil
}

// Set implements StatsCache
func (m *Memory) Set(_ context.Context, stats domain.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[field(stats.AsOf, stats.WindowDays)] = memoryEntry{
		stats:   stats,
		expires: m.now().Add(m.ttl),
	}
	return nil
}

// Invalidate implements StatsCache
func (m *Memory) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

// Close implements StatsCache
func (m *Memory) Close() error {
	return nil
}
