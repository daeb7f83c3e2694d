package llm

import (
	"context"
	"fmt"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
)

const systemPrompt = "You are a sentiment analysis expert. Respond with only a number."

const upliftPromptTemplate = `Rate how uplifting/positive this news headline is on a scale of -5 to +5.

-5 = Very negative, alarming, depressing
-3 = Somewhat negative
0 = Neutral, factual
+3 = Somewhat positive, mildly uplifting
+5 = Very positive, uplifting, heartwarming, inspiring

Headline: %s

Respond with ONLY a single number between -5 and +5 (e.g., "3.2" or "-1.5"). Do not include any explanation or other text.`

// Scorer rates a headline's uplift on the -5..+5 scale.
type Scorer interface {
	ScoreHeadline(ctx context.Context, title, description string) (float64, error)
	ModelName() string
}

// NewScorer picks the provider configured in cfg.
func NewScorer(cfg config.LLMConfig) (Scorer, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg), nil
	case "anthropic":
		return NewAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func buildUpliftPrompt(title, description string) string {
	text := title
	if description != "" {
		text += " " + description
	}
	return fmt.Sprintf(upliftPromptTemplate, text)
}
