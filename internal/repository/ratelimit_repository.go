package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rclarke009/news-sentiment-comparison/db"
)

// RateLimitRepository tracks metered LLM calls per UTC calendar date.
type RateLimitRepository struct {
	rateLimits *mongo.Collection
}

func NewRateLimitRepository(database *mongo.Database) *RateLimitRepository {
	return &RateLimitRepository{
		rateLimits: database.Collection(db.RateLimitsCollection),
	}
}

type rateLimitDoc struct {
	Date        string    `bson:"date"`
	OpenAICalls int       `bson:"openai_calls"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// GetCallCount returns the current counter for a date (0 if no record).
func (r *RateLimitRepository) GetCallCount(ctx context.Context, date string) (int, error) {
	var doc rateLimitDoc
	err := r.rateLimits.FindOne(ctx, bson.M{"date": date}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting call count for %s: %w", date, err)
	}
	return doc.OpenAICalls, nil
}

// IncrementCallCount atomically increments the counter for a date and
// returns the new value. A single upsert-$inc keeps concurrent callers
// from racing past the limit on separate read-then-write round trips.
func (r *RateLimitRepository) IncrementCallCount(ctx context.Context, date string) (int, error) {
	update := bson.M{
		"$inc":         bson.M{"openai_calls": 1},
		"$set":         bson.M{"updated_at": time.Now().UTC()},
		"$setOnInsert": bson.M{"date": date},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc rateLimitDoc
	err := r.rateLimits.FindOneAndUpdate(ctx, bson.M{"date": date}, update, opts).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("incrementing call count for %s: %w", date, err)
	}

	return doc.OpenAICalls, nil
}
