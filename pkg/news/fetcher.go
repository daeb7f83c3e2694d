package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

// Fetcher gathers the day's headlines for both political sides,
// combining the NewsAPI batch with any configured RSS feeds.
type Fetcher struct {
	conservative sideSources
	liberal      sideSources
	limit        int

	// pause between upstream calls, so a collection run stays polite
	apiDelay  time.Duration
	feedDelay time.Duration
}

type sideSources struct {
	side  string
	api   SourceClient
	feeds []SourceClient
}

func NewFetcher(apiCfg config.NewsAPIConfig, srcCfg config.SourcesConfig) *Fetcher {
	return &Fetcher{
		conservative: buildSide(model.SideConservative, apiCfg, srcCfg.Conservative, srcCfg.ConservativeRSS),
		liberal:      buildSide(model.SideLiberal, apiCfg, srcCfg.Liberal, srcCfg.LiberalRSS),
		limit:        srcCfg.HeadlinesPerSide,
		apiDelay:     500 * time.Millisecond,
		feedDelay:    300 * time.Millisecond,
	}
}

func buildSide(side string, apiCfg config.NewsAPIConfig, apiSources []string, feeds config.RSSSourceList) sideSources {
	s := sideSources{side: side}

	if len(apiSources) > 0 {
		s.api = NewNewsAPIClient(apiCfg, apiSources)
	}
	for _, f := range feeds {
		s.feeds = append(s.feeds, NewRSSClient(f.URL, f.Name, f.ID))
	}

	return s
}

// FetchSides fetches both sides sequentially. A failing upstream is
// logged and skipped so one outlet's outage never empties the whole
// side. When every source comes back empty and at least one of them
// was turned away with a 429, the error wraps ErrRateLimited so
// callers can tell a rate-limit outage from an ordinary dry day.
func (f *Fetcher) FetchSides(ctx context.Context) (conservative, liberal []model.Headline, err error) {
	conservative, conRateLimited := f.fetchSide(ctx, f.conservative)
	liberal, libRateLimited := f.fetchSide(ctx, f.liberal)

	if err := ctx.Err(); err != nil {
		return conservative, liberal, err
	}
	if len(conservative) == 0 && len(liberal) == 0 && (conRateLimited || libRateLimited) {
		return nil, nil, fmt.Errorf("all sources empty: %w", ErrRateLimited)
	}
	return conservative, liberal, nil
}

func (f *Fetcher) fetchSide(ctx context.Context, src sideSources) ([]model.Headline, bool) {
	var (
		stories     []Story
		rateLimited bool
	)

	if src.api != nil {
		batch, err := src.api.Fetch(ctx, f.limit)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				rateLimited = true
			}
			slog.Warn("news api fetch failed", "side", src.side, "error", err)
		} else {
			stories = append(stories, batch...)
		}
		f.sleep(ctx, f.apiDelay)
	}

	for i, feed := range src.feeds {
		if i > 0 {
			f.sleep(ctx, f.feedDelay)
		}

		batch, err := feed.Fetch(ctx, f.limit)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				rateLimited = true
			}
			slog.Warn("rss fetch failed", "side", src.side, "feed", feed.Name(), "error", err)
			continue
		}
		stories = append(stories, batch...)
	}

	// the per-side cap applies to the merged list; API items come
	// first, so it is the overflowing RSS items that get dropped
	if len(stories) > f.limit {
		stories = stories[:f.limit]
	}

	headlines := make([]model.Headline, 0, len(stories))
	for _, s := range stories {
		headlines = append(headlines, model.NewHeadline(s.Title, s.Description, s.URL, s.Source, s.SourceID, s.PublishedAt, src.side))
	}

	return headlines, rateLimited
}

func (f *Fetcher) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
