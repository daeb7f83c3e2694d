package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

type fakeStore struct {
	comparison *model.DailyComparison
	recent     []model.DailyComparison
	headlines  []model.Headline
	err        error
}

func (f *fakeStore) GetDailyComparison(ctx context.Context, date string) (*model.DailyComparison, error) {
	return f.comparison, f.err
}

func (f *fakeStore) GetRecentComparisons(ctx context.Context, limit int) ([]model.DailyComparison, error) {
	return f.recent, f.err
}

func (f *fakeStore) GetHeadlinesByDate(ctx context.Context, date, side string) ([]model.Headline, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Headline
	for _, h := range f.headlines {
		if side != "" && h.PoliticalSide != side {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeStore) GetHeadlinesForComparison(ctx context.Context, days int, side string) ([]model.Headline, error) {
	return f.headlines, f.err
}

type passCache struct {
	entries map[string]*model.DailyComparison
	sets    int
}

func (c *passCache) Get(date string) (*model.DailyComparison, bool) {
	v, ok := c.entries[date]
	return v, ok
}

func (c *passCache) Set(date string, value *model.DailyComparison) {
	if c.entries == nil {
		c.entries = map[string]*model.DailyComparison{}
	}
	c.entries[date] = value
	c.sets++
}

func testSources() config.SourcesConfig {
	return config.SourcesConfig{
		Conservative:    []string{"breitbart-news", "national-review"},
		Liberal:         []string{"cnn", "the-new-york-times"},
		ConservativeRSS: config.RSSSourceList{{URL: "https://www.newsmax.com/rss/Newsfront/16/", Name: "Newsmax", ID: "newsmax"}},
	}
}

func newTestRouter(store *fakeStore, pingErr error) (*gin.Engine, *passCache) {
	gin.SetMode(gin.TestMode)
	cache := &passCache{}
	h := NewComparisonHandler(store, store, cache, func(ctx context.Context) error { return pingErr }, testSources(), "gpt-4o-mini")

	r := gin.New()
	r.GET("/health", h.GetHealth)
	r.GET("/today", h.GetToday)
	r.GET("/date/:date", h.GetDate)
	r.GET("/history", h.GetHistory)
	r.GET("/stats", h.GetStats)
	r.GET("/most-uplifting", h.GetMostUplifting)
	r.GET("/sources", h.GetSources)
	r.GET("/headlines/:date", h.GetHeadlines)
	r.GET("/model-comparison", h.GetModelComparison)
	return r, cache
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	r.ServeHTTP(w, req)
	return w
}

func sampleComparison(date string) *model.DailyComparison {
	return &model.DailyComparison{
		Date: date,
		Conservative: model.SideStatistics{
			AvgUplift:          1.2,
			PositivePercentage: 55,
			TotalHeadlines:     20,
			ScoreDistribution:  map[string]int{"0-2": 11, "-2-0": 9},
			MostUplifting: &model.MostUpliftingStory{
				Title:       "Community rebuilds park",
				URL:         "https://example.com/park",
				Source:      "Newsmax",
				UpliftScore: 4.0,
				FinalScore:  4.5,
				PublishedAt: time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC),
			},
		},
		Liberal: model.SideStatistics{
			AvgUplift:          -0.4,
			PositivePercentage: 40,
			TotalHeadlines:     18,
			ScoreDistribution:  map[string]int{"-2-0": 18},
		},
		CreatedAt: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
	}
}

func TestGetDate_ReturnsComparison(t *testing.T) {
	store := &fakeStore{comparison: sampleComparison("2026-08-25")}
	r, cache := newTestRouter(store, nil)

	w := get(r, "/date/2026-08-25")

	assert.Equal(t, http.StatusOK, w.Code)

	var res DailyComparisonResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "2026-08-25", res.Date)
	assert.Equal(t, 1.2, res.Conservative.AvgUplift)
	assert.Equal(t, 18, res.Liberal.TotalHeadlines)
	assert.Equal(t, "Community rebuilds park", res.Conservative.MostUplifting.Title)

	// read-through populated the cache
	assert.Equal(t, 1, cache.sets)
}

func TestGetDate_InvalidFormat(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/date/26-08-2026")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDate_NotFound(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/date/2026-08-25")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDate_ServedFromCache(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	r, cache := newTestRouter(store, nil)
	cache.Set("2026-08-25", sampleComparison("2026-08-25"))

	w := get(r, "/date/2026-08-25")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetDate_DBError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	r, _ := newTestRouter(store, nil)

	w := get(r, "/date/2026-08-25")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetHistory(t *testing.T) {
	store := &fakeStore{recent: []model.DailyComparison{
		*sampleComparison("2026-08-26"),
		*sampleComparison("2026-08-25"),
	}}
	r, _ := newTestRouter(store, nil)

	w := get(r, "/history?days=2")

	assert.Equal(t, http.StatusOK, w.Code)

	var res HistoryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, res.Days)
	assert.Equal(t, 2, len(res.Comparisons))
}

func TestGetHistory_Empty(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/history")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStats(t *testing.T) {
	a := sampleComparison("2026-08-26")
	b := sampleComparison("2026-08-25")
	b.Conservative.AvgUplift = 0.8
	b.Liberal.AvgUplift = 0.4

	store := &fakeStore{recent: []model.DailyComparison{*a, *b}}
	r, _ := newTestRouter(store, nil)

	w := get(r, "/stats?days=30")

	assert.Equal(t, http.StatusOK, w.Code)

	var res StatsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, res.TotalDays)
	assert.Equal(t, 1.0, res.ConservativeAvg)
	assert.Equal(t, 0.0, res.LiberalAvg)
}

func TestGetMostUplifting(t *testing.T) {
	store := &fakeStore{comparison: sampleComparison("2026-08-26")}
	r, _ := newTestRouter(store, nil)

	w := get(r, "/most-uplifting?side=conservative&date=2026-08-26")

	assert.Equal(t, http.StatusOK, w.Code)

	var res MostUpliftingResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Community rebuilds park", res.Title)
	assert.Equal(t, 4.5, res.FinalScore)
}

func TestGetMostUplifting_InvalidSide(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/most-uplifting?side=centrist")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMostUplifting_NoStory(t *testing.T) {
	store := &fakeStore{comparison: sampleComparison("2026-08-26")}
	r, _ := newTestRouter(store, nil)

	// the liberal side in the sample has no uplifting story
	w := get(r, "/most-uplifting?side=liberal&date=2026-08-26")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSources(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/sources")

	assert.Equal(t, http.StatusOK, w.Code)

	var res SourcesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, []string{"Breitbart News", "National Review", "Newsmax"}, res.Conservative)
	assert.Equal(t, []string{"CNN", "The New York Times"}, res.Liberal)
}

func TestGetHeadlines(t *testing.T) {
	score := 2.5
	con := model.NewHeadline("Tax cuts pass", "", "https://example.com/c", "Newsmax", "newsmax", time.Now(), model.SideConservative)
	con.FinalScore = &score
	lib := model.NewHeadline("Climate bill advances", "", "https://example.com/l", "CNN", "cnn", time.Now(), model.SideLiberal)

	store := &fakeStore{headlines: []model.Headline{con, lib}}
	r, _ := newTestRouter(store, nil)

	w := get(r, "/headlines/2026-08-26")

	assert.Equal(t, http.StatusOK, w.Code)

	var res HeadlinesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "Tax cuts pass", res.Headlines[0].Title)
	assert.Equal(t, 2.5, *res.Headlines[0].FinalScore)
}

func TestGetHeadlines_SideFilter(t *testing.T) {
	con := model.NewHeadline("Tax cuts pass", "", "https://example.com/c", "Newsmax", "newsmax", time.Now(), model.SideConservative)
	lib := model.NewHeadline("Climate bill advances", "", "https://example.com/l", "CNN", "cnn", time.Now(), model.SideLiberal)

	store := &fakeStore{headlines: []model.Headline{con, lib}}
	r, _ := newTestRouter(store, nil)

	w := get(r, "/headlines/2026-08-26?side=liberal")

	var res HeadlinesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, model.SideLiberal, res.Headlines[0].PoliticalSide)
}

func TestGetHeadlines_InvalidDate(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/headlines/not-a-date")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHeadlines_Empty(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/headlines/2026-08-26")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetModelComparison(t *testing.T) {
	final := 3.0
	local := -1.5
	confidence := 0.8
	h := model.NewHeadline("Rally continues", "", "https://example.com", "CNN", "cnn", time.Now(), model.SideLiberal)
	h.FinalScore = &final
	h.LocalSentimentScore = &local
	h.LocalSentimentLabel = "NEGATIVE"
	h.LocalSentimentConfidence = &confidence
	h.Date = "2026-08-26"

	unscored := model.NewHeadline("No scores", "", "https://example.com/2", "NPR", "npr", time.Now(), model.SideLiberal)

	store := &fakeStore{headlines: []model.Headline{h, unscored}}
	r, _ := newTestRouter(store, nil)

	w := get(r, "/model-comparison?days=7&side=liberal")

	assert.Equal(t, http.StatusOK, w.Code)

	var res ModelComparisonResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.TotalRows)
	assert.Equal(t, 4.5, res.Rows[0].Difference)
	assert.Equal(t, 4.5, res.AvgAbsDifference)
	assert.Equal(t, "NEGATIVE", res.Rows[0].LocalLabel)
	assert.Equal(t, "gpt-4o-mini", res.LLMModel)
}

func TestGetModelComparison_InvalidSide(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/model-comparison?side=middle")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHealth(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, nil)

	w := get(r, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetHealth_DBDown(t *testing.T) {
	r, _ := newTestRouter(&fakeStore{}, errors.New("no reachable servers"))

	w := get(r, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "CNN", displayName("cnn"))
	assert.Equal(t, "MSNBC", displayName("msnbc"))
	assert.Equal(t, "Breitbart News", displayName("breitbart-news"))
	assert.Equal(t, "Washington Post", displayName("washington-post"))
}

func TestGetQueryDays(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		want  int
	}{
		{"", 7},
		{"?days=30", 30},
		{"?days=0", 7},
		{"?days=-5", 7},
		{"?days=9999", 365},
		{"?days=abc", 7},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/history"+tc.query, nil)
		assert.Equal(t, tc.want, getQueryDays(c, 7))
	}
}
