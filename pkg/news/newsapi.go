package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
)

type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	maxRetries int
	sources    []string
	httpClient *http.Client
}

// NewNewsAPIClient builds a client scoped to a fixed set of source IDs
// (one side of the comparison). Fetch asks the top-headlines endpoint
// for all of them in a single call.
func NewNewsAPIClient(cfg config.NewsAPIConfig, sources []string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		sources:    sources,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Fetch(ctx context.Context, limit int) ([]Story, error) {
	if len(c.sources) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("sources", strings.Join(c.sources, ","))
	params.Set("pageSize", fmt.Sprintf("%d", limit))
	params.Set("apiKey", c.apiKey)

	endpoint := fmt.Sprintf("%s/top-headlines?%s", c.baseURL, params.Encode())

	resp, err := c.doWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	if raw.Status != "ok" {
		return nil, fmt.Errorf("newsapi error response: %s", raw.Message)
	}

	stories := make([]Story, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if item.Title == "" || item.URL == "" {
			continue
		}

		stories = append(stories, Story{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      item.Source.Name,
			SourceID:    sourceID(item.Source.ID, item.Source.Name),
			PublishedAt: ParseTimestamp(item.PublishedAt),
		})
	}

	return stories, nil
}

// doWithRetry retries 429 and 5xx responses with exponential backoff.
// Persistent 429s surface as ErrRateLimited so callers can report the
// quota problem distinctly from upstream outages.
func (c *NewsAPIClient) doWithRetry(ctx context.Context, endpoint string) (*http.Response, error) {
	var lastStatus int

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("newsapi request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("newsapi fetch: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastStatus = resp.StatusCode
			resp.Body.Close()
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("newsapi status %d", resp.StatusCode)
		}

		return resp, nil
	}

	if lastStatus == http.StatusTooManyRequests {
		return nil, fmt.Errorf("newsapi status %d after %d retries: %w", lastStatus, c.maxRetries, ErrRateLimited)
	}
	return nil, fmt.Errorf("newsapi status %d after %d retries", lastStatus, c.maxRetries)
}

// sourceID prefers the upstream ID and falls back to a slug of the
// source name ("Fox News" -> "fox-news").
func sourceID(id, name string) string {
	if id != "" {
		return id
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// ParseTimestamp handles RFC3339 timestamps with oversized fractional
// seconds (some upstreams emit more than nanosecond precision). Anything
// unparseable falls back to the current time so a bad timestamp never
// drops a headline.
func ParseTimestamp(value string) time.Time {
	if value == "" {
		return time.Now().UTC()
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC()
	}

	if t, err := time.Parse(time.RFC3339, truncateFraction(value)); err == nil {
		return t.UTC()
	}

	return time.Now().UTC()
}

func truncateFraction(value string) string {
	dot := strings.IndexByte(value, '.')
	if dot < 0 {
		return value
	}

	end := dot + 1
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}

	frac := value[dot+1 : end]
	if len(frac) > 6 {
		frac = frac[:6]
	}

	return value[:dot+1] + frac + value[end:]
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
}

type newsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
