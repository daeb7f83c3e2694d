package model

import "time"

// MostUpliftingStory is the highest-scoring headline snapshot embedded
// in a side's statistics.
type MostUpliftingStory struct {
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	URL         string    `bson:"url" json:"url"`
	Source      string    `bson:"source" json:"source"`
	UpliftScore float64   `bson:"uplift_score" json:"uplift_score"`
	FinalScore  float64   `bson:"final_score" json:"final_score"`
	PublishedAt time.Time `bson:"published_at" json:"published_at"`
}

// SideStatistics aggregates one side's scored headlines for a day.
type SideStatistics struct {
	AvgUplift          float64             `bson:"avg_uplift" json:"avg_uplift"`
	PositivePercentage float64             `bson:"positive_percentage" json:"positive_percentage"`
	TotalHeadlines     int                 `bson:"total_headlines" json:"total_headlines"`
	MostUplifting      *MostUpliftingStory `bson:"most_uplifting,omitempty" json:"most_uplifting,omitempty"`
	ScoreDistribution  map[string]int      `bson:"score_distribution" json:"score_distribution"`

	AvgLocalSentiment       *float64 `bson:"avg_local_sentiment,omitempty" json:"avg_local_sentiment,omitempty"`
	LocalPositivePercentage *float64 `bson:"local_positive_percentage,omitempty" json:"local_positive_percentage,omitempty"`
}

// DailyComparison holds both sides' statistics for one UTC calendar
// date. At most one exists per date (upsert by date).
type DailyComparison struct {
	Date         string         `bson:"date" json:"date"`
	Conservative SideStatistics `bson:"conservative" json:"conservative"`
	Liberal      SideStatistics `bson:"liberal" json:"liberal"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updated_at"`
}
