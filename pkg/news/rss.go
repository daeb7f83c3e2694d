package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

type RSSClient struct {
	feedURL  string
	source   string
	sourceID string
	parser   *gofeed.Parser
}

// NewRSSClient fetches headlines from a single RSS feed. Outlets that
// NewsAPI does not carry (Newsmax, for one) come in through here.
func NewRSSClient(feedURL, source, sourceID string) *RSSClient {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}

	return &RSSClient{
		feedURL:  feedURL,
		source:   source,
		sourceID: sourceID,
		parser:   parser,
	}
}

func (c *RSSClient) Name() string {
	return c.source
}

func (c *RSSClient) Fetch(ctx context.Context, limit int) ([]Story, error) {
	feed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s: %w", c.sourceID, err)
	}

	stories := make([]Story, 0, limit)
	for _, item := range feed.Items {
		if len(stories) >= limit {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}

		stories = append(stories, Story{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			Source:      c.source,
			SourceID:    c.sourceID,
			PublishedAt: itemPublished(item),
		})
	}

	return stories, nil
}

func itemPublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return time.Now().UTC()
}
