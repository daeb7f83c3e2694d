package model

import "time"

const (
	SideConservative = "conservative"
	SideLiberal      = "liberal"
)

// ValidSide reports whether s is one of the two configured political sides.
func ValidSide(s string) bool {
	return s == SideConservative || s == SideLiberal
}

// Headline is one collected article. Score fields are nil until the
// scorer has processed it.
type Headline struct {
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	URL           string    `bson:"url" json:"url"`
	Source        string    `bson:"source" json:"source"`
	SourceID      string    `bson:"source_id" json:"source_id"`
	PublishedAt   time.Time `bson:"published_at" json:"published_at"`
	PoliticalSide string    `bson:"political_side" json:"political_side"`

	UpliftScore  *float64 `bson:"uplift_score,omitempty" json:"uplift_score,omitempty"`
	KeywordBoost float64  `bson:"keyword_boost" json:"keyword_boost"`
	FinalScore   *float64 `bson:"final_score,omitempty" json:"final_score,omitempty"`

	LocalSentimentScore      *float64 `bson:"local_sentiment_score,omitempty" json:"local_sentiment_score,omitempty"`
	LocalSentimentLabel      string   `bson:"local_sentiment_label,omitempty" json:"local_sentiment_label,omitempty"`
	LocalSentimentConfidence *float64 `bson:"local_sentiment_confidence,omitempty" json:"local_sentiment_confidence,omitempty"`
	ScoreDifference          *float64 `bson:"score_difference,omitempty" json:"score_difference,omitempty"`

	// Date tags the headline with the collection date (YYYY-MM-DD, UTC).
	// Set by the repository when a batch is saved.
	Date        string    `bson:"date,omitempty" json:"date,omitempty"`
	CollectedAt time.Time `bson:"collected_at" json:"collected_at"`
}

func NewHeadline(title, description, url, source, sourceID string, publishedAt time.Time, side string) Headline {
	return Headline{
		Title:         title,
		Description:   description,
		URL:           url,
		Source:        source,
		SourceID:      sourceID,
		PublishedAt:   publishedAt.UTC(),
		PoliticalSide: side,
		CollectedAt:   time.Now().UTC(),
	}
}

// SetScores fills the LLM score fields. FinalScore is always recomputed
// as clamp(-5, 5, uplift+boost), never stored independently.
func (h *Headline) SetScores(uplift, boost float64) {
	final := ClampScore(uplift + boost)
	h.UpliftScore = &uplift
	h.KeywordBoost = boost
	h.FinalScore = &final
}

// ClampScore bounds s to the [-5, 5] scoring range.
func ClampScore(s float64) float64 {
	if s > 5.0 {
		return 5.0
	}
	if s < -5.0 {
		return -5.0
	}
	return s
}
