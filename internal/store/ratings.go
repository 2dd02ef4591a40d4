package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

type UserRatingDb struct {
	UserId     string    `json:"userId" bson:"userId"`
	BeverageId string    `json:"beverageId" bson:"beverageId"`
	Rating     int       `json:"rating" bson:"rating"`
	Comments   string    `json:"comments,omitempty" bson:"comments,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ----- Methods for the database -----

// UpsertUserRating writes the user's rating for a beverage, replacing any
// prior rating from the same user. One rating per user per beverage.
func (db *DB) UpsertUserRating(ctx context.Context, rating UserRatingDb) (UserRatingDb, error) {
	coll := db.Collection(UserRatingsCollection)

	now := time.Now()
	rating.UpdatedAt = now

	filter := bson.M{"userId": rating.UserId, "beverageId": rating.BeverageId}
	update := bson.M{
		"$set": bson.M{
			"rating":    rating.Rating,
			"comments":  rating.Comments,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"userId":     rating.UserId,
			"beverageId": rating.BeverageId,
			"createdAt":  now,
		},
	}

	result, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return UserRatingDb{}, err
	}

	if result.UpsertedCount > 0 {
		rating.CreatedAt = now
	}

	return rating, nil
}

func (db *DB) GetUserRatingsByBeverageId(ctx context.Context, beverageId string) ([]UserRatingDb, error) {
	coll := db.Collection(UserRatingsCollection)

	filter := bson.M{"beverageId": beverageId}

	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return []UserRatingDb{}, err
	}
	defer cursor.Close(ctx)

	var ratingsDb []UserRatingDb
	if err = cursor.All(ctx, &ratingsDb); err != nil {
		return []UserRatingDb{}, err
	}

	return ratingsDb, nil
}

func (db *DB) GetUserRating(ctx context.Context, userId, beverageId string) (UserRatingDb, error) {
	coll := db.Collection(UserRatingsCollection)

	filter := bson.M{"userId": userId, "beverageId": beverageId}

	var rating UserRatingDb
	err := coll.FindOne(ctx, filter).Decode(&rating)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return UserRatingDb{}, ErrRecordNotFound
		}
		return UserRatingDb{}, err
	}

	return rating, nil
}

// DistinctRatedBeverageIds returns every beverage id that has at least one
// user rating. Used by the maintenance sweep.
func (db *DB) DistinctRatedBeverageIds(ctx context.Context) ([]string, error) {
	coll := db.Collection(UserRatingsCollection)

	values, err := coll.Distinct(ctx, "beverageId", bson.M{})
	if err != nil {
		return nil, err
	}

	return distinctToStrings(values), nil
}

func distinctToStrings(values []any) []string {
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
