package news

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

type fakeSource struct {
	name    string
	stories []Story
	err     error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, limit int) ([]Story, error) {
	return f.stories, f.err
}

func makeStories(prefix string, n int) []Story {
	stories := make([]Story, 0, n)
	for i := 0; i < n; i++ {
		stories = append(stories, Story{
			Title:       fmt.Sprintf("%s headline %d", prefix, i),
			URL:         fmt.Sprintf("https://example.com/%s/%d", prefix, i),
			Source:      prefix,
			SourceID:    prefix,
			PublishedAt: time.Now().UTC(),
		})
	}
	return stories
}

func TestFetchSideCapsAfterMerge(t *testing.T) {
	f := &Fetcher{
		conservative: sideSources{
			side:  model.SideConservative,
			api:   &fakeSource{name: "api", stories: makeStories("api", 4)},
			feeds: []SourceClient{&fakeSource{name: "feed", stories: makeStories("feed", 3)}},
		},
		limit: 5,
	}

	got, rateLimited := f.fetchSide(context.Background(), f.conservative)

	assert.Equal(t, false, rateLimited)
	assert.Equal(t, 5, len(got))
	assert.Equal(t, "api headline 0", got[0].Title)
	assert.Equal(t, "feed headline 0", got[4].Title)
	for _, h := range got {
		assert.Equal(t, model.SideConservative, h.PoliticalSide)
	}
}

func TestFetchSideSkipsFailingSources(t *testing.T) {
	f := &Fetcher{
		liberal: sideSources{
			side: model.SideLiberal,
			api:  &fakeSource{name: "api", err: errors.New("boom")},
			feeds: []SourceClient{
				&fakeSource{name: "feed1", err: errors.New("timeout")},
				&fakeSource{name: "feed2", stories: makeStories("feed2", 2)},
			},
		},
		limit: 10,
	}

	got, rateLimited := f.fetchSide(context.Background(), f.liberal)

	assert.Equal(t, false, rateLimited)
	assert.Equal(t, 2, len(got))
	assert.Equal(t, "feed2", got[0].SourceID)
}

func TestFetchSidesRateLimitedEverywhere(t *testing.T) {
	limited := fmt.Errorf("newsapi: %w", ErrRateLimited)
	f := &Fetcher{
		conservative: sideSources{
			side: model.SideConservative,
			api:  &fakeSource{name: "capi", err: limited},
		},
		liberal: sideSources{
			side:  model.SideLiberal,
			api:   &fakeSource{name: "lapi", err: limited},
			feeds: []SourceClient{&fakeSource{name: "feed", err: errors.New("timeout")}},
		},
		limit: 10,
	}

	conservative, liberal, err := f.FetchSides(context.Background())

	assert.Equal(t, 0, len(conservative))
	assert.Equal(t, 0, len(liberal))
	assert.Equal(t, true, errors.Is(err, ErrRateLimited))
}

func TestFetchSidesRateLimitedOneSideStillSucceeds(t *testing.T) {
	f := &Fetcher{
		conservative: sideSources{
			side: model.SideConservative,
			api:  &fakeSource{name: "capi", err: fmt.Errorf("newsapi: %w", ErrRateLimited)},
		},
		liberal: sideSources{
			side: model.SideLiberal,
			api:  &fakeSource{name: "lapi", stories: makeStories("lib", 2)},
		},
		limit: 10,
	}

	conservative, liberal, err := f.FetchSides(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(conservative))
	assert.Equal(t, 2, len(liberal))
}

func TestFetchSidesBothSides(t *testing.T) {
	f := &Fetcher{
		conservative: sideSources{
			side: model.SideConservative,
			api:  &fakeSource{name: "capi", stories: makeStories("con", 1)},
		},
		liberal: sideSources{
			side: model.SideLiberal,
			api:  &fakeSource{name: "lapi", stories: makeStories("lib", 2)},
		},
		limit: 10,
	}

	conservative, liberal, err := f.FetchSides(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(conservative))
	assert.Equal(t, 2, len(liberal))
	assert.Equal(t, model.SideLiberal, liberal[0].PoliticalSide)
}
