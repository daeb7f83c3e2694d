package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rclarke009/news-sentiment-comparison/internal/collector"
	"github.com/rclarke009/news-sentiment-comparison/internal/model"
	"github.com/rclarke009/news-sentiment-comparison/pkg/news"
)

type CollectionRunner interface {
	CollectDailyNews(ctx context.Context, targetDate time.Time) (*model.DailyComparison, error)
}

// CollectHandler exposes the collection pipeline to the cron scheduler.
type CollectHandler struct {
	runner     CollectionRunner
	cronSecret string
	production bool
}

func NewCollectHandler(runner CollectionRunner, cronSecret string, production bool) *CollectHandler {
	return &CollectHandler{
		runner:     runner,
		cronSecret: cronSecret,
		production: production,
	}
}

// Collect runs a collection synchronously. Callers must present the
// shared secret in X-Cron-Secret; an optional date query backfills a
// past day.
func (h *CollectHandler) Collect(c *gin.Context) {
	if h.cronSecret == "" {
		slog.Error("collect endpoint called but no cron secret configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Collection endpoint not configured"})
		return
	}

	provided := c.GetHeader("X-Cron-Secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.cronSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing cron secret"})
		return
	}

	var targetDate time.Time
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		targetDate = parsed
	}

	comparison, err := h.runner.CollectDailyNews(c.Request.Context(), targetDate)
	if err != nil {
		h.collectError(c, err)
		return
	}

	res := comparisonResponse(comparison)
	c.JSON(http.StatusOK, CollectResponse{
		Status:     "completed",
		Date:       comparison.Date,
		Comparison: &res,
	})
}

func (h *CollectHandler) collectError(c *gin.Context, err error) {
	slog.Error("collection run failed", "error", err)

	switch {
	case errors.Is(err, news.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Upstream rate limit exceeded"})
	case errors.Is(err, collector.ErrNoHeadlines):
		c.JSON(http.StatusBadGateway, gin.H{"error": "No headlines available from any source"})
	default:
		detail := "Collection failed"
		if !h.production {
			detail = "Collection failed: " + err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": detail})
	}
}
