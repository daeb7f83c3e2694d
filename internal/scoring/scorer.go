package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
	"github.com/rclarke009/news-sentiment-comparison/internal/model"
	"github.com/rclarke009/news-sentiment-comparison/internal/sentiment"
	"github.com/rclarke009/news-sentiment-comparison/pkg/llm"
)

const maxKeywordBoost = 2.0

// headline scores this far apart between the LLM and the local model
// are worth a closer look in the logs
const divergenceThreshold = 4.0

// LocalClassifier is the optional on-box sentiment model consulted
// alongside the LLM for the model-comparison view.
type LocalClassifier interface {
	Classify(text string) sentiment.Result
}

// SentimentScorer assigns uplift scores to headlines: an LLM base
// score, a keyword boost for puff pieces, and optionally a local
// model's opinion for comparison.
type SentimentScorer struct {
	llm             llm.Scorer
	limiter         *Limiter
	local           LocalClassifier
	provider        string
	keywords        []string
	boostMultiplier float64
}

func NewSentimentScorer(client llm.Scorer, limiter *Limiter, local LocalClassifier, provider string, puffCfg config.PuffPieceConfig) *SentimentScorer {
	return &SentimentScorer{
		llm:             client,
		limiter:         limiter,
		local:           local,
		provider:        provider,
		keywords:        puffCfg.Keywords,
		boostMultiplier: puffCfg.BoostMultiplier,
	}
}

// ScoreHeadline fills in the headline's score fields. When the daily
// call budget is spent the LLM is skipped and the base score is
// neutral, so a collection run degrades instead of aborting.
func (s *SentimentScorer) ScoreHeadline(ctx context.Context, h *model.Headline) error {
	base, err := s.llmScore(ctx, h)
	if err != nil {
		return err
	}

	boost := s.keywordBoost(h)
	h.SetScores(base, boost)

	s.applyLocalScore(h)

	return nil
}

func (s *SentimentScorer) llmScore(ctx context.Context, h *model.Headline) (float64, error) {
	today := time.Now().UTC().Format("2006-01-02")

	decision, err := s.limiter.Allow(ctx, s.provider, today)
	if err != nil {
		return 0, fmt.Errorf("rate limit check: %w", err)
	}

	if !decision.Allowed {
		slog.Warn("daily llm call limit reached, scoring neutral",
			"title", truncate(h.Title, 50),
			"current", decision.Current,
			"limit", decision.Limit,
		)
		return 0.0, nil
	}

	score, err := s.llm.ScoreHeadline(ctx, h.Title, h.Description)
	if err != nil {
		return 0, fmt.Errorf("llm score for %q: %w", truncate(h.Title, 50), err)
	}

	return score, nil
}

func (s *SentimentScorer) keywordBoost(h *model.Headline) float64 {
	text := strings.ToLower(h.Title)
	if h.Description != "" {
		text += " " + strings.ToLower(h.Description)
	}

	matches := 0
	for _, keyword := range s.keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			matches++
		}
	}

	if matches == 0 {
		return 0.0
	}

	return math.Min(float64(matches)*s.boostMultiplier, maxKeywordBoost)
}

func (s *SentimentScorer) applyLocalScore(h *model.Headline) {
	if s.local == nil {
		return
	}

	result := s.local.Classify(h.Title)
	if result.Label == "" {
		return
	}

	score, confidence := result.Score, result.Confidence
	h.LocalSentimentScore = &score
	h.LocalSentimentLabel = result.Label
	h.LocalSentimentConfidence = &confidence

	if h.UpliftScore != nil {
		diff := *h.UpliftScore - result.Score
		h.ScoreDifference = &diff

		if math.Abs(diff) > divergenceThreshold {
			slog.Info("llm and local model disagree",
				"title", truncate(h.Title, 50),
				"llm_score", *h.UpliftScore,
				"local_score", result.Score,
				"difference", diff,
			)
		}
	}
}

// ScoreHeadlines scores a batch sequentially, dropping headlines that
// fail so one bad response cannot sink the whole run.
func (s *SentimentScorer) ScoreHeadlines(ctx context.Context, headlines []model.Headline) []model.Headline {
	slog.Info("scoring headlines", "count", len(headlines))

	scored := make([]model.Headline, 0, len(headlines))
	for i := range headlines {
		if err := s.ScoreHeadline(ctx, &headlines[i]); err != nil {
			slog.Error("failed to score headline", "index", i+1, "error", err)
			continue
		}
		scored = append(scored, headlines[i])

		if (i+1)%10 == 0 {
			slog.Info("scoring progress", "scored", i+1, "total", len(headlines))
		}
	}

	slog.Info("scoring complete", "scored", len(scored), "total", len(headlines))
	return scored
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
