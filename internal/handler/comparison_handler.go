package handler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

type ComparisonStore interface {
	GetDailyComparison(ctx context.Context, date string) (*model.DailyComparison, error)
	GetRecentComparisons(ctx context.Context, limit int) ([]model.DailyComparison, error)
}

type HeadlineStore interface {
	GetHeadlinesByDate(ctx context.Context, date, side string) ([]model.Headline, error)
	GetHeadlinesForComparison(ctx context.Context, days int, side string) ([]model.Headline, error)
}

type ComparisonCache interface {
	Get(date string) (*model.DailyComparison, bool)
	Set(date string, value *model.DailyComparison)
}

type ComparisonHandler struct {
	comparisons ComparisonStore
	headlines   HeadlineStore
	cache       ComparisonCache
	ping        func(ctx context.Context) error
	sources     config.SourcesConfig
	llmModel    string
}

func NewComparisonHandler(comparisons ComparisonStore, headlines HeadlineStore, cache ComparisonCache, ping func(ctx context.Context) error, sources config.SourcesConfig, llmModel string) *ComparisonHandler {
	return &ComparisonHandler{
		comparisons: comparisons,
		headlines:   headlines,
		cache:       cache,
		ping:        ping,
		sources:     sources,
		llmModel:    llmModel,
	}
}

func (h *ComparisonHandler) GetHealth(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ComparisonHandler) GetToday(c *gin.Context) {
	today := time.Now().UTC().Format("2006-01-02")
	h.serveComparison(c, today)
}

func (h *ComparisonHandler) GetDate(c *gin.Context) {
	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	h.serveComparison(c, date)
}

func (h *ComparisonHandler) serveComparison(c *gin.Context, date string) {
	comparison, err := h.getComparison(c.Request.Context(), date)
	if err != nil {
		slog.Error("error fetching comparison", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if comparison == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No comparison found for date %s", date)})
		return
	}

	c.JSON(http.StatusOK, comparisonResponse(comparison))
}

// getComparison is the cache read-through used by all comparison reads.
func (h *ComparisonHandler) getComparison(ctx context.Context, date string) (*model.DailyComparison, error) {
	if cached, ok := h.cache.Get(date); ok {
		return cached, nil
	}

	comparison, err := h.comparisons.GetDailyComparison(ctx, date)
	if err != nil {
		return nil, err
	}

	if comparison != nil {
		h.cache.Set(date, comparison)
	}

	return comparison, nil
}

func (h *ComparisonHandler) GetHistory(c *gin.Context) {
	days := getQueryDays(c, 7)

	comparisons, err := h.comparisons.GetRecentComparisons(c.Request.Context(), days)
	if err != nil {
		slog.Error("error fetching history", "days", days, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if len(comparisons) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No historical comparisons found"})
		return
	}

	res := HistoryResponse{Days: len(comparisons)}
	for i := range comparisons {
		res.Comparisons = append(res.Comparisons, comparisonResponse(&comparisons[i]))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ComparisonHandler) GetStats(c *gin.Context) {
	days := getQueryDays(c, 30)

	comparisons, err := h.comparisons.GetRecentComparisons(c.Request.Context(), days)
	if err != nil {
		slog.Error("error fetching stats", "days", days, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if len(comparisons) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data available for statistics"})
		return
	}

	res := StatsResponse{TotalDays: len(comparisons)}
	var conAvg, libAvg, conPct, libPct float64
	for _, cmp := range comparisons {
		conAvg += cmp.Conservative.AvgUplift
		libAvg += cmp.Liberal.AvgUplift
		conPct += cmp.Conservative.PositivePercentage
		libPct += cmp.Liberal.PositivePercentage
	}

	n := float64(len(comparisons))
	res.ConservativeAvg = conAvg / n
	res.LiberalAvg = libAvg / n
	res.ConservativePositivePct = conPct / n
	res.LiberalPositivePct = libPct / n

	c.JSON(http.StatusOK, res)
}

func (h *ComparisonHandler) GetMostUplifting(c *gin.Context) {
	side := c.Query("side")
	if !model.ValidSide(side) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be 'conservative' or 'liberal'"})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	comparison, err := h.getComparison(c.Request.Context(), date)
	if err != nil {
		slog.Error("error fetching comparison", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if comparison == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No comparison found for date %s", date)})
		return
	}

	sideStats := comparison.Conservative
	if side == model.SideLiberal {
		sideStats = comparison.Liberal
	}

	if sideStats.MostUplifting == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No uplifting story found for %s on %s", side, date)})
		return
	}

	c.JSON(http.StatusOK, mostUpliftingResponse(sideStats.MostUplifting))
}

func (h *ComparisonHandler) GetSources(c *gin.Context) {
	res := SourcesResponse{
		Conservative: sourceDisplayNames(h.sources.Conservative, h.sources.ConservativeRSS),
		Liberal:      sourceDisplayNames(h.sources.Liberal, h.sources.LiberalRSS),
	}
	c.JSON(http.StatusOK, res)
}

// GetHeadlines lists the stored headlines for a date, highest final
// score first. side is optional.
func (h *ComparisonHandler) GetHeadlines(c *gin.Context) {
	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	side := c.Query("side")
	if side != "" && !model.ValidSide(side) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be 'conservative' or 'liberal'"})
		return
	}

	headlines, err := h.headlines.GetHeadlinesByDate(c.Request.Context(), date, side)
	if err != nil {
		slog.Error("error fetching headlines", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if len(headlines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No headlines found for date %s", date)})
		return
	}

	res := HeadlinesResponse{Date: date, Total: len(headlines)}
	for _, head := range headlines {
		res.Headlines = append(res.Headlines, HeadlineResponse{
			Title:         head.Title,
			Description:   head.Description,
			URL:           head.URL,
			Source:        head.Source,
			PoliticalSide: head.PoliticalSide,
			PublishedAt:   head.PublishedAt.Format(time.RFC3339),
			UpliftScore:   head.UpliftScore,
			FinalScore:    head.FinalScore,
		})
	}

	c.JSON(http.StatusOK, res)
}

// GetModelComparison lists headlines that carry both an LLM score and
// a local model score, side by side.
func (h *ComparisonHandler) GetModelComparison(c *gin.Context) {
	days := getQueryDays(c, 7)

	side := c.Query("side")
	if side != "" && !model.ValidSide(side) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be 'conservative' or 'liberal'"})
		return
	}

	headlines, err := h.headlines.GetHeadlinesForComparison(c.Request.Context(), days, side)
	if err != nil {
		slog.Error("error fetching model comparison", "days", days, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := ModelComparisonResponse{Days: days, LLMModel: h.llmModel, Rows: []ModelComparisonRow{}}

	var totalDiff float64
	for _, head := range headlines {
		if head.FinalScore == nil || head.LocalSentimentScore == nil {
			continue
		}

		diff := math.Abs(*head.FinalScore - *head.LocalSentimentScore)
		totalDiff += diff

		res.Rows = append(res.Rows, ModelComparisonRow{
			Title:         head.Title,
			Source:        head.Source,
			PoliticalSide: head.PoliticalSide,
			Date:          head.Date,
			LLMScore:      *head.FinalScore,
			LocalScore:    *head.LocalSentimentScore,
			LocalLabel:    head.LocalSentimentLabel,
			Confidence:    head.LocalSentimentConfidence,
			Difference:    diff,
		})
	}

	res.TotalRows = len(res.Rows)
	if res.TotalRows > 0 {
		res.AvgAbsDifference = totalDiff / float64(res.TotalRows)
	}

	c.JSON(http.StatusOK, res)
}

func comparisonResponse(comparison *model.DailyComparison) DailyComparisonResponse {
	return DailyComparisonResponse{
		Date:         comparison.Date,
		Conservative: sideStatisticsResponse(comparison.Conservative),
		Liberal:      sideStatisticsResponse(comparison.Liberal),
		CreatedAt:    comparison.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    comparison.UpdatedAt.Format(time.RFC3339),
	}
}

func sideStatisticsResponse(s model.SideStatistics) SideStatisticsResponse {
	res := SideStatisticsResponse{
		AvgUplift:               s.AvgUplift,
		PositivePercentage:      s.PositivePercentage,
		TotalHeadlines:          s.TotalHeadlines,
		ScoreDistribution:       s.ScoreDistribution,
		AvgLocalSentiment:       s.AvgLocalSentiment,
		LocalPositivePercentage: s.LocalPositivePercentage,
	}
	if res.ScoreDistribution == nil {
		res.ScoreDistribution = map[string]int{}
	}
	if s.MostUplifting != nil {
		r := mostUpliftingResponse(s.MostUplifting)
		res.MostUplifting = &r
	}
	return res
}

func mostUpliftingResponse(s *model.MostUpliftingStory) MostUpliftingResponse {
	return MostUpliftingResponse{
		Title:       s.Title,
		Description: s.Description,
		URL:         s.URL,
		Source:      s.Source,
		UpliftScore: s.UpliftScore,
		FinalScore:  s.FinalScore,
		PublishedAt: s.PublishedAt.Format(time.RFC3339),
	}
}

// acronym source IDs keep their casing in display names
var sourceAcronyms = map[string]string{
	"cnn":   "CNN",
	"npr":   "NPR",
	"msnbc": "MSNBC",
}

func sourceDisplayNames(apiIDs []string, feeds config.RSSSourceList) []string {
	names := make([]string, 0, len(apiIDs)+len(feeds))
	for _, id := range apiIDs {
		names = append(names, displayName(id))
	}
	for _, feed := range feeds {
		names = append(names, feed.Name)
	}
	return names
}

// displayName converts a kebab-case source ID ("the-new-york-times")
// to a display name ("The New York Times").
func displayName(sourceID string) string {
	lower := strings.ToLower(sourceID)
	if name, ok := sourceAcronyms[lower]; ok {
		return name
	}

	parts := strings.Split(lower, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)
	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsed
}

func getQueryDays(c *gin.Context, defaultDays int) int {
	const maxDays = 365

	days := getQueryInt("days", defaultDays, c)
	if days < 1 {
		slog.Warn("invalid query parameter, using default", "param", "days", "value", days, "default", defaultDays)
		return defaultDays
	}
	if days > maxDays {
		slog.Warn("query parameter exceeds max, clamping", "param", "days", "value", days, "max", maxDays)
		return maxDays
	}
	return days
}
