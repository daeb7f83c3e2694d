package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rclarke009/news-sentiment-comparison/db"
	"github.com/rclarke009/news-sentiment-comparison/internal/cache"
	"github.com/rclarke009/news-sentiment-comparison/internal/collector"
	"github.com/rclarke009/news-sentiment-comparison/internal/config"
	"github.com/rclarke009/news-sentiment-comparison/internal/handler"
	"github.com/rclarke009/news-sentiment-comparison/internal/repository"
	"github.com/rclarke009/news-sentiment-comparison/internal/scoring"
	"github.com/rclarke009/news-sentiment-comparison/internal/sentiment"
	"github.com/rclarke009/news-sentiment-comparison/pkg/llm"
	"github.com/rclarke009/news-sentiment-comparison/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("error connecting to MongoDB: %v", err)
	}
	defer db.Close()

	headlineRepo := repository.NewHeadlineRepository(db.Database)
	comparisonRepo := repository.NewComparisonRepository(db.Database)
	rateLimitRepo := repository.NewRateLimitRepository(db.Database)

	comparisonCache := cache.New(cfg.Cache)

	llmClient, err := llm.NewScorer(cfg.LLM)
	if err != nil {
		log.Fatalf("error creating llm client: %v", err)
	}

	var local scoring.LocalClassifier
	if cfg.LocalModel.Enabled {
		classifier, err := sentiment.NewClassifier(cfg.LocalModel)
		if err != nil {
			slog.Warn("local sentiment model unavailable, continuing without it", "error", err)
		} else {
			local = classifier
		}
	}

	limiter := scoring.NewLimiter(rateLimitRepo, cfg.LLM.DailyCallLimit)
	scorer := scoring.NewSentimentScorer(llmClient, limiter, local, cfg.LLM.Provider, cfg.PuffPieces)
	fetcher := news.NewFetcher(cfg.NewsAPI, cfg.Sources)
	runner := collector.New(fetcher, scorer, headlineRepo, comparisonRepo, comparisonCache)

	comparisonHandler := handler.NewComparisonHandler(comparisonRepo, headlineRepo, comparisonCache, db.Ping, cfg.Sources, llmClient.ModelName())
	collectHandler := handler.NewCollectHandler(runner, cfg.API.CronSecret, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	slog.Info("allowed CORS origins", "urls", cfg.API.CORSOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.API.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Cron-Secret"},
		AllowCredentials: true,
	}))
	r.Use(securityHeaders())

	v1 := r.Group("/api/v1")
	v1.GET("/health", comparisonHandler.GetHealth)
	v1.GET("/today", comparisonHandler.GetToday)
	v1.GET("/date/:date", comparisonHandler.GetDate)
	v1.GET("/history", comparisonHandler.GetHistory)
	v1.GET("/stats", comparisonHandler.GetStats)
	v1.GET("/most-uplifting", comparisonHandler.GetMostUplifting)
	v1.GET("/sources", comparisonHandler.GetSources)
	v1.GET("/headlines/:date", comparisonHandler.GetHeadlines)
	v1.GET("/model-comparison", comparisonHandler.GetModelComparison)
	v1.POST("/collect", collectHandler.Collect)

	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	err = r.Run(addr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
