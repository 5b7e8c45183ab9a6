package database

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName          = "article_registry"
	articlesCollection    = "articles"
	idempotencyCollection = "idempotency_keys"
)

// Store wraps the Mongo client and the collections used by the registry.
// One Store is constructed at startup and shared by all in-flight requests;
// the driver handles its own connection pooling.
type Store struct {
	client      *mongo.Client
	articles    *mongo.Collection
	idempotency *mongo.Collection
}

// Connect opens the Mongo client, verifies connectivity and ensures indexes.
// The endpoint comes from MONGO_URL and falls back to the local default port.
func Connect(ctx context.Context) (*Store, error) {
	_ = godotenv.Load()

	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	s := &Store{
		client:      client,
		articles:    db.Collection(articlesCollection),
		idempotency: db.Collection(idempotencyCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Ping reports whether the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
