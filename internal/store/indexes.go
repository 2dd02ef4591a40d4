package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAllIndexes creates the unique indexes the derived-state invariants
// lean on: one rating per (userId, beverageId), one directed edge per
// (userId, friendId) and (userId, restaurantId), one summary row per beverage
// and one badge row per user.
func (db *DB) CreateAllIndexes(ctx context.Context, reset bool) error {
	type indexSpec struct {
		collection string
		name       string
		keys       bson.D
		unique     bool
	}

	specs := []indexSpec{
		{
			collection: UserRatingsCollection,
			name:       "userId_and_beverageId_unique",
			keys:       bson.D{{Key: "userId", Value: 1}, {Key: "beverageId", Value: 1}},
			unique:     true,
		},
		{
			// Expert ratings accumulate, so no uniqueness — just the lookup path
			// the recomputation engine reads through.
			collection: ExpertRatingsCollection,
			name:       "beverageId_lookup",
			keys:       bson.D{{Key: "beverageId", Value: 1}},
		},
		{
			collection: BeverageRatingsCollection,
			name:       "beverageId_unique",
			keys:       bson.D{{Key: "beverageId", Value: 1}},
			unique:     true,
		},
		{
			collection: FriendsCollection,
			name:       "userId_and_friendId_unique",
			keys:       bson.D{{Key: "userId", Value: 1}, {Key: "friendId", Value: 1}},
			unique:     true,
		},
		{
			collection: BookmarksCollection,
			name:       "userId_and_restaurantId_unique",
			keys:       bson.D{{Key: "userId", Value: 1}, {Key: "restaurantId", Value: 1}},
			unique:     true,
		},
		{
			collection: BadgesCollection,
			name:       "userId_unique",
			keys:       bson.D{{Key: "userId", Value: 1}},
			unique:     true,
		},
	}

	for _, spec := range specs {
		model := mongo.IndexModel{
			Keys:    spec.keys,
			Options: options.Index().SetName(spec.name).SetUnique(spec.unique),
		}
		if err := createIndexIfNotExists(ctx, db.Collection(spec.collection), model, spec.name, reset); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", spec.collection, err)
		}
	}

	return nil
}

// createIndexIfNotExists checks if an index exists and creates it if it doesn't
func createIndexIfNotExists(ctx context.Context, coll *mongo.Collection, indexModel mongo.IndexModel, indexName string, reset bool) error {
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	indexExists := false
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			return fmt.Errorf("failed to decode index: %w", err)
		}

		if name, ok := index["name"].(string); ok && name == indexName {
			indexExists = true
			break
		}
	}

	if err := cursor.Err(); err != nil {
		return fmt.Errorf("cursor error: %w", err)
	}

	if indexExists {
		if !reset {
			fmt.Printf("ℹ️  Index '%s' already exists on collection '%s', skipping...\n", indexName, coll.Name())
			return nil
		}
		_, err := coll.Indexes().DropOne(ctx, indexName)
		if err != nil {
			return fmt.Errorf("failed to delete index '%s': %w", indexName, err)
		}
		fmt.Printf("🗑️  Deleted index '%s' on collection '%s'\n", indexName, coll.Name())
	}

	_, err = coll.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("failed to create index '%s': %w", indexName, err)
	}

	fmt.Printf("✅ Created index '%s' on collection '%s'\n", indexName, coll.Name())
	return nil
}
