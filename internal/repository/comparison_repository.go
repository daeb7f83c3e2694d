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

type ComparisonRepository struct {
	comparisons *mongo.Collection
}

func NewComparisonRepository(database *mongo.Database) *ComparisonRepository {
	return &ComparisonRepository{
		comparisons: database.Collection(db.ComparisonsCollection),
	}
}

// SaveDailyComparison upserts the comparison for its date. created_at is
// set only on first insert; updated_at is refreshed on every call.
func (r *ComparisonRepository) SaveDailyComparison(ctx context.Context, c *model.DailyComparison) error {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"conservative": c.Conservative,
			"liberal":      c.Liberal,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"date":       c.Date,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.comparisons.UpdateOne(ctx, bson.M{"date": c.Date}, update, opts); err != nil {
		return fmt.Errorf("upserting daily comparison for %s: %w", c.Date, err)
	}

	c.UpdatedAt = now
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}

	return nil
}

// GetDailyComparison returns the comparison for a date, or nil when none
// has been collected.
func (r *ComparisonRepository) GetDailyComparison(ctx context.Context, date string) (*model.DailyComparison, error) {
	var c model.DailyComparison
	err := r.comparisons.FindOne(ctx, bson.M{"date": date}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting daily comparison for %s: %w", date, err)
	}
	return &c, nil
}

// GetRecentComparisons returns up to n comparisons, newest date first.
func (r *ComparisonRepository) GetRecentComparisons(ctx context.Context, n int) ([]model.DailyComparison, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(n))

	cursor, err := r.comparisons.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying recent comparisons: %w", err)
	}
	defer cursor.Close(ctx)

	var comparisons []model.DailyComparison
	if err := cursor.All(ctx, &comparisons); err != nil {
		return nil, fmt.Errorf("decoding recent comparisons: %w", err)
	}

	return comparisons, nil
}
