// Package stats aggregates scored headlines into per-side daily
// statistics. Pure computation: no storage, no clocks.
package stats

import (
	"sort"

	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

// Calculate summarizes one side's scored headlines. Headlines without
// a final score count toward the total but not toward averages or the
// distribution.
func Calculate(headlines []model.Headline) model.SideStatistics {
	if len(headlines) == 0 {
		return model.SideStatistics{
			ScoreDistribution: map[string]int{},
		}
	}

	var scores []float64
	for _, h := range headlines {
		if h.FinalScore != nil {
			scores = append(scores, *h.FinalScore)
		}
	}

	stats := model.SideStatistics{
		TotalHeadlines:    len(headlines),
		ScoreDistribution: distribution(scores),
	}

	if len(scores) > 0 {
		var sum float64
		positive := 0
		for _, s := range scores {
			sum += s
			if s > 0 {
				positive++
			}
		}
		stats.AvgUplift = sum / float64(len(scores))
		stats.PositivePercentage = float64(positive) / float64(len(scores)) * 100
	}

	applyLocalStats(&stats, headlines)
	stats.MostUplifting = mostUplifting(headlines)

	return stats
}

func applyLocalStats(stats *model.SideStatistics, headlines []model.Headline) {
	var localScores []float64
	for _, h := range headlines {
		if h.LocalSentimentScore != nil {
			localScores = append(localScores, *h.LocalSentimentScore)
		}
	}

	if len(localScores) == 0 {
		return
	}

	var sum float64
	positive := 0
	for _, s := range localScores {
		sum += s
		if s > 0 {
			positive++
		}
	}

	avg := sum / float64(len(localScores))
	pct := float64(positive) / float64(len(localScores)) * 100
	stats.AvgLocalSentiment = &avg
	stats.LocalPositivePercentage = &pct
}

// mostUplifting picks the highest-scoring headline, but only when it
// is actually positive. A day where everything scored negative has no
// most-uplifting story.
func mostUplifting(headlines []model.Headline) *model.MostUpliftingStory {
	sorted := make([]model.Headline, len(headlines))
	copy(sorted, headlines)

	// unscored headlines sort below every real score
	sort.SliceStable(sorted, func(i, j int) bool {
		return scoreOrDefault(sorted[i]) > scoreOrDefault(sorted[j])
	})

	top := sorted[0]
	if top.FinalScore == nil || *top.FinalScore <= 0 {
		return nil
	}

	uplift := 0.0
	if top.UpliftScore != nil {
		uplift = *top.UpliftScore
	}

	return &model.MostUpliftingStory{
		Title:       top.Title,
		Description: top.Description,
		URL:         top.URL,
		Source:      top.Source,
		UpliftScore: uplift,
		FinalScore:  *top.FinalScore,
		PublishedAt: top.PublishedAt,
	}
}

func scoreOrDefault(h model.Headline) float64 {
	if h.FinalScore == nil {
		return -10
	}
	return *h.FinalScore
}

// distribution buckets final scores into the fixed ranges the UI
// charts. Bucket edges are inclusive on the low side of the first
// match going top down.
func distribution(scores []float64) map[string]int {
	dist := map[string]int{}
	for _, s := range scores {
		switch {
		case s >= 4:
			dist["4-5"]++
		case s >= 2:
			dist["2-4"]++
		case s >= 0:
			dist["0-2"]++
		case s >= -2:
			dist["-2-0"]++
		default:
			dist["-5--2"]++
		}
	}
	return dist
}
