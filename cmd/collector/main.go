package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rclarke009/news-sentiment-comparison/db"
	"github.com/rclarke009/news-sentiment-comparison/internal/collector"
	"github.com/rclarke009/news-sentiment-comparison/internal/config"
	"github.com/rclarke009/news-sentiment-comparison/internal/repository"
	"github.com/rclarke009/news-sentiment-comparison/internal/scoring"
	"github.com/rclarke009/news-sentiment-comparison/internal/sentiment"
	"github.com/rclarke009/news-sentiment-comparison/pkg/llm"
	"github.com/rclarke009/news-sentiment-comparison/pkg/news"
)

// One-shot collection run, meant for a cron schedule. Pass -date to
// backfill a specific day.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	dateFlag := flag.String("date", "", "collection date (YYYY-MM-DD, defaults to today UTC)")
	flag.Parse()

	var targetDate time.Time
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *dateFlag, err)
		}
		targetDate = parsed
	}

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

	llmClient, err := llm.NewScorer(cfg.LLM)
	if err != nil {
		log.Fatalf("error creating llm client: %v", err)
	}
	slog.Info("llm scorer ready", "provider", cfg.LLM.Provider, "model", llmClient.ModelName())

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

	runner := collector.New(fetcher, scorer, headlineRepo, comparisonRepo, nil)

	comparison, err := runner.CollectDailyNews(context.Background(), targetDate)
	if err != nil {
		slog.Error("collection failed", "error", err)
		os.Exit(1)
	}

	slog.Info("collection finished",
		"date", comparison.Date,
		"conservative_headlines", comparison.Conservative.TotalHeadlines,
		"liberal_headlines", comparison.Liberal.TotalHeadlines,
	)
}
