package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rclarke009/news-sentiment-comparison/db"
	"github.com/rclarke009/news-sentiment-comparison/internal/model"
)

type HeadlineRepository struct {
	headlines *mongo.Collection
}

func NewHeadlineRepository(database *mongo.Database) *HeadlineRepository {
	return &HeadlineRepository{
		headlines: database.Collection(db.HeadlinesCollection),
	}
}

// SaveHeadlines inserts a scored batch tagged with the collection date.
// Inserts are additive: re-running a collection for the same date grows
// the collection rather than replacing earlier documents.
func (r *HeadlineRepository) SaveHeadlines(ctx context.Context, headlines []model.Headline, date string) (int, error) {
	if len(headlines) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(headlines))
	for _, h := range headlines {
		h.Date = date
		docs = append(docs, h)
	}

	result, err := r.headlines.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("inserting %d headlines for %s: %w", len(headlines), date, err)
	}

	return len(result.InsertedIDs), nil
}

// GetHeadlinesByDate returns headlines for a date, highest final score
// first. side is optional ("" means both sides).
func (r *HeadlineRepository) GetHeadlinesByDate(ctx context.Context, date, side string) ([]model.Headline, error) {
	filter := bson.M{"date": date}
	if side != "" {
		filter["political_side"] = side
	}

	opts := options.Find().SetSort(bson.D{{Key: "final_score", Value: -1}})
	cursor, err := r.headlines.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying headlines for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var headlines []model.Headline
	if err := cursor.All(ctx, &headlines); err != nil {
		return nil, fmt.Errorf("decoding headlines for %s: %w", date, err)
	}

	return headlines, nil
}

// GetHeadlinesForComparison returns headlines from the last N days that
// carry both an LLM and a local-model score, for model-comparison
// reporting. side is optional.
func (r *HeadlineRepository) GetHeadlinesForComparison(ctx context.Context, days int, side string) ([]model.Headline, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	filter := bson.M{
		"date":                  bson.M{"$gte": cutoff},
		"uplift_score":          bson.M{"$exists": true, "$ne": nil},
		"local_sentiment_score": bson.M{"$exists": true, "$ne": nil},
	}
	if side != "" {
		filter["political_side"] = side
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.headlines.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying headlines for comparison: %w", err)
	}
	defer cursor.Close(ctx)

	var headlines []model.Headline
	if err := cursor.All(ctx, &headlines); err != nil {
		return nil, fmt.Errorf("decoding comparison headlines: %w", err)
	}

	return headlines, nil
}
