package stats

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

func scored(title string, final float64) model.Headline {
	h := model.NewHeadline(title, "", "https://example.com/"+title, "CNN", "cnn", time.Now(), model.SideLiberal)
	h.SetScores(final, 0)
	return h
}

func TestCalculateEmpty(t *testing.T) {
	got := Calculate(nil)

	assert.Equal(t, 0, got.TotalHeadlines)
	assert.Equal(t, 0.0, got.AvgUplift)
	assert.Equal(t, 0.0, got.PositivePercentage)
	assert.Equal(t, 0, len(got.ScoreDistribution))
	if got.MostUplifting != nil {
		t.Fatalf("expected no most uplifting story, got %+v", got.MostUplifting)
	}
}

func TestCalculateAveragesAndDistribution(t *testing.T) {
	headlines := []model.Headline{
		scored("a", 5),
		scored("b", 3),
		scored("c", -1),
		scored("d", -5),
		scored("e", 1),
	}

	got := Calculate(headlines)

	assert.Equal(t, 5, got.TotalHeadlines)
	assert.Equal(t, 0.6, got.AvgUplift)
	assert.Equal(t, 60.0, got.PositivePercentage)

	assert.Equal(t, 1, got.ScoreDistribution["4-5"])
	assert.Equal(t, 1, got.ScoreDistribution["2-4"])
	assert.Equal(t, 1, got.ScoreDistribution["0-2"])
	assert.Equal(t, 1, got.ScoreDistribution["-2-0"])
	assert.Equal(t, 1, got.ScoreDistribution["-5--2"])

	assert.NotEqual(t, nil, got.MostUplifting)
	assert.Equal(t, "a", got.MostUplifting.Title)
	assert.Equal(t, 5.0, got.MostUplifting.FinalScore)
}

func TestCalculateBucketEdges(t *testing.T) {
	headlines := []model.Headline{
		scored("four", 4),
		scored("two", 2),
		scored("zero", 0),
		scored("minus-two", -2),
		scored("minus-five", -5),
	}

	got := Calculate(headlines)

	assert.Equal(t, 1, got.ScoreDistribution["4-5"])
	assert.Equal(t, 1, got.ScoreDistribution["2-4"])
	assert.Equal(t, 1, got.ScoreDistribution["0-2"])
	assert.Equal(t, 1, got.ScoreDistribution["-2-0"])
	assert.Equal(t, 1, got.ScoreDistribution["-5--2"])
}

func TestNoMostUpliftingWhenAllNegative(t *testing.T) {
	headlines := []model.Headline{
		scored("a", -1),
		scored("b", -3),
	}

	got := Calculate(headlines)

	if got.MostUplifting != nil {
		t.Fatalf("expected no most uplifting story, got %+v", got.MostUplifting)
	}
}

func TestUnscoredHeadlinesSortLast(t *testing.T) {
	unscored := model.NewHeadline("unscored", "", "https://example.com/u", "NPR", "npr", time.Now(), model.SideLiberal)
	headlines := []model.Headline{unscored, scored("winner", 2)}

	got := Calculate(headlines)

	assert.Equal(t, 2, got.TotalHeadlines)
	assert.Equal(t, 2.0, got.AvgUplift)
	assert.NotEqual(t, nil, got.MostUplifting)
	assert.Equal(t, "winner", got.MostUplifting.Title)
}

func TestLocalModelStats(t *testing.T) {
	withLocal := func(title string, final, local float64) model.Headline {
		h := scored(title, final)
		h.LocalSentimentScore = &local
		return h
	}

	headlines := []model.Headline{
		withLocal("a", 2, 4.5),
		withLocal("b", 1, -3.0),
		scored("no-local", 0),
	}

	got := Calculate(headlines)

	assert.NotEqual(t, nil, got.AvgLocalSentiment)
	assert.Equal(t, 0.75, *got.AvgLocalSentiment)
	assert.Equal(t, 50.0, *got.LocalPositivePercentage)
}

func TestNoLocalStatsWithoutLocalScores(t *testing.T) {
	got := Calculate([]model.Headline{scored("a", 1)})

	if got.AvgLocalSentiment != nil {
		t.Fatalf("expected nil avg local sentiment, got %v", *got.AvgLocalSentiment)
	}
	if got.LocalPositivePercentage != nil {
		t.Fatalf("expected nil local positive percentage, got %v", *got.LocalPositivePercentage)
	}
}
