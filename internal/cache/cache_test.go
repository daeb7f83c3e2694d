package cache

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

func testCache() (*Comparisons, *time.Time) {
	clock := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	c := New(config.CacheConfig{
		Enabled:  true,
		TTLToday: 5 * time.Minute,
		TTLPast:  24 * time.Hour,
	})
	c.now = func() time.Time { return clock }
	return c, &clock
}

func comparison(date string) *model.DailyComparison {
	return &model.DailyComparison{Date: date}
}

func TestSetAndGet(t *testing.T) {
	c, _ := testCache()

	c.Set("2026-08-25", comparison("2026-08-25"))

	got, ok := c.Get("2026-08-25")
	assert.Equal(t, true, ok)
	assert.Equal(t, "2026-08-25", got.Date)

	_, ok = c.Get("2026-08-24")
	assert.Equal(t, false, ok)
}

func TestTodayExpiresFast(t *testing.T) {
	c, clock := testCache()

	c.Set("2026-08-26", comparison("2026-08-26"))

	*clock = clock.Add(4 * time.Minute)
	_, ok := c.Get("2026-08-26")
	assert.Equal(t, true, ok)

	*clock = clock.Add(2 * time.Minute)
	_, ok = c.Get("2026-08-26")
	assert.Equal(t, false, ok)
}

func TestEntryGoneAtExactExpiry(t *testing.T) {
	c, clock := testCache()

	c.Set("2026-08-26", comparison("2026-08-26"))

	*clock = clock.Add(5 * time.Minute)
	_, ok := c.Get("2026-08-26")
	assert.Equal(t, false, ok)
}

func TestPastDatesCacheLonger(t *testing.T) {
	c, clock := testCache()

	c.Set("2026-08-20", comparison("2026-08-20"))

	*clock = clock.Add(12 * time.Hour)
	_, ok := c.Get("2026-08-20")
	assert.Equal(t, true, ok)

	*clock = clock.Add(13 * time.Hour)
	_, ok = c.Get("2026-08-20")
	assert.Equal(t, false, ok)
}

func TestInvalidate(t *testing.T) {
	c, _ := testCache()

	c.Set("2026-08-26", comparison("2026-08-26"))
	c.Invalidate("2026-08-26")

	_, ok := c.Get("2026-08-26")
	assert.Equal(t, false, ok)
}

func TestDisabledCacheStoresNothing(t *testing.T) {
	c := New(config.CacheConfig{Enabled: false, TTLToday: time.Minute, TTLPast: time.Hour})

	c.Set("2026-08-26", comparison("2026-08-26"))

	_, ok := c.Get("2026-08-26")
	assert.Equal(t, false, ok)
}
