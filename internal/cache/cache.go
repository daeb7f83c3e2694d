// Package cache holds a process-local TTL cache for daily comparisons.
// Past days are immutable so they cache long; today keeps changing
// while collection runs, so it caches short.
package cache

import (
	"sync"
	"time"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

type entry struct {
	value     *model.DailyComparison
	expiresAt time.Time
}

type Comparisons struct {
	mu       sync.Mutex
	entries  map[string]entry
	enabled  bool
	ttlToday time.Duration
	ttlPast  time.Duration

	now func() time.Time
}

func New(cfg config.CacheConfig) *Comparisons {
	return &Comparisons{
		entries:  make(map[string]entry),
		enabled:  cfg.Enabled,
		ttlToday: cfg.TTLToday,
		ttlPast:  cfg.TTLPast,
		now:      time.Now,
	}
}

// Get returns the cached comparison for a date, expiring lazily.
func (c *Comparisons) Get(date string) (*model.DailyComparison, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[date]
	if !ok {
		return nil, false
	}
	// an entry is gone the instant its TTL elapses
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, date)
		return nil, false
	}

	return e.value, true
}

func (c *Comparisons) Set(date string, value *model.DailyComparison) {
	if !c.enabled {
		return
	}

	ttl := c.ttlPast
	if date == c.now().UTC().Format("2006-01-02") {
		ttl = c.ttlToday
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[date] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

// Invalidate drops one date, typically after a fresh collection run
// rewrites it.
func (c *Comparisons) Invalidate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, date)
}
