// Package collector orchestrates a daily collection run: fetch both
// sides, score, aggregate, persist, and refresh the cache.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rclarke009/news-sentiment-comparison/internal/model"
	"github.com/rclarke009/news-sentiment-comparison/internal/stats"
)

// ErrNoHeadlines is returned when every upstream source came back
// empty, which usually means keys or connectivity are broken.
var ErrNoHeadlines = errors.New("no headlines available")

type HeadlineFetcher interface {
	FetchSides(ctx context.Context) (conservative, liberal []model.Headline, err error)
}

type HeadlineScorer interface {
	ScoreHeadlines(ctx context.Context, headlines []model.Headline) []model.Headline
}

type HeadlineStore interface {
	SaveHeadlines(ctx context.Context, headlines []model.Headline, date string) (int, error)
}

type ComparisonStore interface {
	SaveDailyComparison(ctx context.Context, comparison *model.DailyComparison) error
}

type ComparisonCache interface {
	Invalidate(date string)
}

type Collector struct {
	fetcher     HeadlineFetcher
	scorer      HeadlineScorer
	headlines   HeadlineStore
	comparisons ComparisonStore
	cache       ComparisonCache
}

func New(fetcher HeadlineFetcher, scorer HeadlineScorer, headlines HeadlineStore, comparisons ComparisonStore, cache ComparisonCache) *Collector {
	return &Collector{
		fetcher:     fetcher,
		scorer:      scorer,
		headlines:   headlines,
		comparisons: comparisons,
		cache:       cache,
	}
}

// CollectDailyNews runs one full collection for targetDate (today UTC
// when zero). Reruns for the same date append headlines and overwrite
// the comparison document.
func (c *Collector) CollectDailyNews(ctx context.Context, targetDate time.Time) (*model.DailyComparison, error) {
	if targetDate.IsZero() {
		targetDate = time.Now().UTC()
	}
	date := targetDate.UTC().Format("2006-01-02")

	slog.Info("starting daily collection", "date", date)

	conservative, liberal, err := c.fetcher.FetchSides(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching headlines: %w", err)
	}

	slog.Info("fetched headlines",
		"date", date,
		"conservative", len(conservative),
		"liberal", len(liberal),
	)

	if len(conservative) == 0 && len(liberal) == 0 {
		slog.Warn("no headlines fetched from any source", "date", date)
		return nil, ErrNoHeadlines
	}

	conservativeScored := c.scorer.ScoreHeadlines(ctx, conservative)
	liberalScored := c.scorer.ScoreHeadlines(ctx, liberal)

	comparison := &model.DailyComparison{
		Date:         date,
		Conservative: stats.Calculate(conservativeScored),
		Liberal:      stats.Calculate(liberalScored),
	}

	if _, err := c.headlines.SaveHeadlines(ctx, conservativeScored, date); err != nil {
		return nil, fmt.Errorf("saving conservative headlines: %w", err)
	}
	if _, err := c.headlines.SaveHeadlines(ctx, liberalScored, date); err != nil {
		return nil, fmt.Errorf("saving liberal headlines: %w", err)
	}

	if err := c.comparisons.SaveDailyComparison(ctx, comparison); err != nil {
		return nil, fmt.Errorf("saving daily comparison: %w", err)
	}

	if c.cache != nil {
		c.cache.Invalidate(date)
	}

	slog.Info("collection complete",
		"date", date,
		"conservative_avg", comparison.Conservative.AvgUplift,
		"liberal_avg", comparison.Liberal.AvgUplift,
	)

	return comparison, nil
}
