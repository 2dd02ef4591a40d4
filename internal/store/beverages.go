package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BeverageDb struct {
	Id           string `json:"id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	Category     string `json:"category,omitempty" bson:"category,omitempty"`
	RestaurantId string `json:"restaurantId,omitempty" bson:"restaurantId,omitempty"`
}

func (db *DB) GetBeverageById(ctx context.Context, id string) (BeverageDb, error) {
	coll := db.Collection(BeveragesCollection)

	var beverage BeverageDb
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&beverage); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return BeverageDb{}, ErrRecordNotFound
		}
		return BeverageDb{}, err
	}

	return beverage, nil
}

func (db *DB) BeverageExists(ctx context.Context, id string) (bool, error) {
	coll := db.Collection(BeveragesCollection)

	// Only ask MongoDB for the _id field
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
