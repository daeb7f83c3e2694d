package handler

type MostUpliftingResponse struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	UpliftScore float64 `json:"uplift_score"`
	FinalScore  float64 `json:"final_score"`
	PublishedAt string  `json:"published_at"`
}

type SideStatisticsResponse struct {
	AvgUplift               float64                `json:"avg_uplift"`
	PositivePercentage      float64                `json:"positive_percentage"`
	TotalHeadlines          int                    `json:"total_headlines"`
	MostUplifting           *MostUpliftingResponse `json:"most_uplifting"`
	ScoreDistribution       map[string]int         `json:"score_distribution"`
	AvgLocalSentiment       *float64               `json:"avg_local_sentiment,omitempty"`
	LocalPositivePercentage *float64               `json:"local_positive_percentage,omitempty"`
}

type DailyComparisonResponse struct {
	Date         string                 `json:"date"`
	Conservative SideStatisticsResponse `json:"conservative"`
	Liberal      SideStatisticsResponse `json:"liberal"`
	CreatedAt    string                 `json:"created_at"`
	UpdatedAt    string                 `json:"updated_at"`
}

type HistoryResponse struct {
	Comparisons []DailyComparisonResponse `json:"comparisons"`
	Days        int                       `json:"days"`
}

type StatsResponse struct {
	TotalDays               int     `json:"total_days"`
	ConservativeAvg         float64 `json:"conservative_avg"`
	LiberalAvg              float64 `json:"liberal_avg"`
	ConservativePositivePct float64 `json:"conservative_positive_pct"`
	LiberalPositivePct      float64 `json:"liberal_positive_pct"`
}

type SourcesResponse struct {
	Conservative []string `json:"conservative"`
	Liberal      []string `json:"liberal"`
}

type ModelComparisonRow struct {
	Title         string   `json:"title"`
	Source        string   `json:"source"`
	PoliticalSide string   `json:"political_side"`
	Date          string   `json:"date"`
	LLMScore      float64  `json:"llm_score"`
	LocalScore    float64  `json:"local_score"`
	LocalLabel    string   `json:"local_label"`
	Confidence    *float64 `json:"confidence,omitempty"`
	Difference    float64  `json:"difference"`
}

type ModelComparisonResponse struct {
	Rows             []ModelComparisonRow `json:"rows"`
	TotalRows        int                  `json:"total_rows"`
	AvgAbsDifference float64              `json:"avg_abs_difference"`
	Days             int                  `json:"days"`
	LLMModel         string               `json:"llm_model,omitempty"`
}

type HeadlineResponse struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	URL           string   `json:"url"`
	Source        string   `json:"source"`
	PoliticalSide string   `json:"political_side"`
	PublishedAt   string   `json:"published_at"`
	UpliftScore   *float64 `json:"uplift_score"`
	FinalScore    *float64 `json:"final_score"`
}

type HeadlinesResponse struct {
	Date      string             `json:"date"`
	Headlines []HeadlineResponse `json:"headlines"`
	Total     int                `json:"total"`
}

type CollectResponse struct {
	Status     string                   `json:"status"`
	Date       string                   `json:"date"`
	Comparison *DailyComparisonResponse `json:"comparison,omitempty"`
}
