package llm

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

var scorePattern = regexp.MustCompile(`-?\d+\.?\d*`)

// ParseScore extracts a numeric uplift score from a model response.
// Models mostly obey the "only a number" instruction, but not always:
// the first number anywhere in the text wins, then sentiment phrases,
// then a logged neutral default.
func ParseScore(content string) float64 {
	content = strings.TrimSpace(content)

	if match := scorePattern.FindString(content); match != "" {
		if score, err := strconv.ParseFloat(match, 64); err == nil {
			return model.ClampScore(score)
		}
	}

	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "very positive") || strings.Contains(lower, "very uplifting"):
		return 4.5
	case strings.Contains(lower, "very negative"):
		return -4.5
	case strings.Contains(lower, "positive") || strings.Contains(lower, "uplifting"):
		return 3.0
	case strings.Contains(lower, "neutral"):
		return 0.0
	case strings.Contains(lower, "negative"):
		return -2.0
	}

	slog.Warn("could not parse score from llm response", "content", content, "length", len(content))
	return 0.0
}
