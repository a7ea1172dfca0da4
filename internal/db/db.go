package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and pings it so a bad URI fails at startup rather
// than on the first request.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	if uri == "" {
		return nil, fmt.Errorf("MongoDB URI not provided")
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(cctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// Health wraps the driver's ping for readiness checks.
type Health struct {
	client *mongo.Client
}

func NewHealth(database *mongo.Database) *Health {
	return &Health{client: database.Client()}
}

func (h *Health) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, nil)
}

// EnsureIndexes creates the indexes the repositories rely on. Safe to call on
// every startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	cctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := database.Collection("users").Indexes().CreateMany(cctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = database.Collection("services").Indexes().CreateOne(cctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("services indexes: %w", err)
	}

	// speeds up the approved-only public listing sorted by rating
	_, err = database.Collection("testimonials").Indexes().CreateOne(cctx, mongo.IndexModel{
		Keys: bson.D{{Key: "isApproved", Value: 1}, {Key: "rating", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("testimonials indexes: %w", err)
	}

	return nil
}
