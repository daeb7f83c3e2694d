package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
)

const (
	HeadlinesCollection   = "headlines"
	ComparisonsCollection = "daily_comparisons"
	RateLimitsCollection  = "api_rate_limits"
)

var (
	Client   *mongo.Client
	Database *mongo.Database
)

func Connect(cfg config.MongoConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	Client = client
	Database = client.Database(cfg.Database)

	if err := createIndexes(); err != nil {
		// Index creation failing should not block startup; queries still work.
		slog.Warn("error creating database indexes", "error", err)
	}

	return nil
}

func createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	headlines := Database.Collection(HeadlinesCollection)
	_, err := headlines.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "political_side", Value: 1}}},
		{Keys: bson.D{{Key: "published_at", Value: -1}}},
		{Keys: bson.D{{Key: "final_score", Value: -1}}},
		{Keys: bson.D{{Key: "source_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("headlines indexes: %w", err)
	}

	comparisons := Database.Collection(ComparisonsCollection)
	_, err = comparisons.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("daily_comparisons indexes: %w", err)
	}

	rateLimits := Database.Collection(RateLimitsCollection)
	_, err = rateLimits.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("api_rate_limits index: %w", err)
	}

	return nil
}

// Ping checks the connection, used by the health endpoint.
func Ping(ctx context.Context) error {
	if Client == nil {
		return fmt.Errorf("MongoDB not connected")
	}
	return Client.Ping(ctx, nil)
}

func Close() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := Client.Disconnect(ctx); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}
}
