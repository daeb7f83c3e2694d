package news

import (
	"context"
	"errors"
	"time"
)

// Story is a raw headline as fetched from any upstream source, before
// scoring or persistence concerns attach to it.
type Story struct {
	Title       string
	Description string
	URL         string
	Source      string
	SourceID    string
	PublishedAt time.Time
}

// SourceClient fetches headlines from one upstream (an API, an RSS feed).
type SourceClient interface {
	Fetch(ctx context.Context, limit int) ([]Story, error)
	Name() string
}

// ErrRateLimited is returned when an upstream keeps answering 429 after
// all retries are exhausted.
var ErrRateLimited = errors.New("news: upstream rate limit exceeded")
