package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

type ExpertRatingDb struct {
	Id                 string    `json:"id" bson:"_id"`
	ExpertId           string    `json:"expertId" bson:"expertId"`
	BeverageId         string    `json:"beverageId" bson:"beverageId"`
	PresentationRating int       `json:"presentationRating" bson:"presentationRating"`
	TasteRating        int       `json:"tasteRating" bson:"tasteRating"`
	IngredientsRating  int       `json:"ingredientsRating" bson:"ingredientsRating"`
	AccuracyRating     int       `json:"accuracyRating" bson:"accuracyRating"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
}

// ----- Methods for the database -----

// AddExpertRating inserts a new expert rating row. Repeat ratings from the
// same expert for the same beverage accumulate.
func (db *DB) AddExpertRating(ctx context.Context, rating ExpertRatingDb) (ExpertRatingDb, error) {
	coll := db.Collection(ExpertRatingsCollection)

	rating.Id = primitive.NewObjectID().Hex()
	rating.CreatedAt = time.Now()

	_, err := coll.InsertOne(ctx, rating)
	if err != nil {
		return ExpertRatingDb{}, err
	}

	return rating, nil
}

// UpsertExpertRating replaces the expert's previous rating for the beverage,
// mirroring the one-rating-per-user behavior of the human path.
func (db *DB) UpsertExpertRating(ctx context.Context, rating ExpertRatingDb) (ExpertRatingDb, error) {
	coll := db.Collection(ExpertRatingsCollection)

	now := time.Now()
	filter := bson.M{"expertId": rating.ExpertId, "beverageId": rating.BeverageId}
	update := bson.M{
		"$set": bson.M{
			"presentationRating": rating.PresentationRating,
			"tasteRating":        rating.TasteRating,
			"ingredientsRating":  rating.IngredientsRating,
			"accuracyRating":     rating.AccuracyRating,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"expertId":   rating.ExpertId,
			"beverageId": rating.BeverageId,
			"createdAt":  now,
		},
	}

	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return ExpertRatingDb{}, err
	}

	return rating, nil
}

func (db *DB) GetExpertRatingsByBeverageId(ctx context.Context, beverageId string) ([]ExpertRatingDb, error) {
	coll := db.Collection(ExpertRatingsCollection)

	filter := bson.M{"beverageId": beverageId}

	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return []ExpertRatingDb{}, err
	}
	defer cursor.Close(ctx)

	var ratingsDb []ExpertRatingDb
	if err = cursor.All(ctx, &ratingsDb); err != nil {
		return []ExpertRatingDb{}, err
	}

	return ratingsDb, nil
}

func (db *DB) GetExpertRatingsByExpertId(ctx context.Context, expertId string, limit int64) ([]ExpertRatingDb, error) {
	coll := db.Collection(ExpertRatingsCollection)

	filter := bson.M{"expertId": expertId}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return []ExpertRatingDb{}, err
	}
	defer cursor.Close(ctx)

	var ratingsDb []ExpertRatingDb
	if err = cursor.All(ctx, &ratingsDb); err != nil {
		return []ExpertRatingDb{}, err
	}

	return ratingsDb, nil
}

func (db *DB) DistinctExpertRatedBeverageIds(ctx context.Context) ([]string, error) {
	coll := db.Collection(ExpertRatingsCollection)

	values, err := coll.Distinct(ctx, "beverageId", bson.M{})
	if err != nil {
		return nil, err
	}

	return distinctToStrings(values), nil
}
