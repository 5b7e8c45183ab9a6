package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the registry's indexes at startup (idempotent):
// - business_key: compound index backing the bulk-import upsert lookup.
//   Deliberately non-unique, duplicate triples are allowed via single create.
// - idempotency key: unique, backs the create-pending race in the middleware.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.articles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "articleCode", Value: 1},
			{Key: "colorCode", Value: 1},
			{Key: "treatmentName", Value: 1},
		},
		Options: options.Index().SetName("business_key"),
	})
	if err != nil {
		return err
	}

	_, err = s.idempotency.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetName("key_unique").SetUnique(true),
	})
	return err
}
