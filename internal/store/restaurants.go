package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RestaurantDb struct {
	Id      string `json:"id" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	Area    string `json:"area,omitempty" bson:"area,omitempty"`
	Cuisine string `json:"cuisine,omitempty" bson:"cuisine,omitempty"`
}

func (db *DB) RestaurantExists(ctx context.Context, id string) (bool, error) {
	coll := db.Collection(RestaurantsCollection)

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})

	err := coll.FindOne(ctx, bson.M{"_id": id}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (db *DB) GetRestaurantsByIds(ctx context.Context, ids []string) ([]RestaurantDb, error) {
	if len(ids) == 0 {
		return []RestaurantDb{}, nil
	}

	coll := db.Collection(RestaurantsCollection)

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return []RestaurantDb{}, err
	}
	defer cursor.Close(ctx)

	var restaurants []RestaurantDb
	if err := cursor.All(ctx, &restaurants); err != nil {
		return []RestaurantDb{}, err
	}

	return restaurants, nil
}
