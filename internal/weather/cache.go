package weather

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// CachedSource decorates a ConditionSource with a TTL cache. Coordinates
// are rounded to two decimals (roughly 1.1km) before keying, so nearby
// lookups share an entry and the upstream API is not hammered by repeated
// projections over the same neighborhood.
type CachedSource struct {
	inner ConditionSource
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	condition string
	expires   time.Time
}

// NewCachedSource wraps inner with a TTL cache. A nil clock uses real time;
// tests inject a fake for deterministic expiry.
func NewCachedSource(inner ConditionSource, ttl time.Duration, clock clockwork.Clock) *CachedSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSource) CurrentCondition(ctx context.Context, lat, lng float64) (string, error) {
	key := coordKey(lat, lng)

	c.mu.Lock()
	e, ok := c.entries[key]
	now := c.clock.Now()
	c.mu.Unlock()

	if ok && now.Before(e.expires) {
		return e.condition, nil
	}

	condition, err := c.inner.CurrentCondition(ctx, lat, lng)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{condition: condition, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return condition, nil
}

func coordKey(lat, lng float64) string {
	const precision = 100.0
	return fmt.Sprintf("%.2f,%.2f", math.Round(lat*precision)/precision, math.Round(lng*precision)/precision)
}
