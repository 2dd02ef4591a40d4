package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

// BeverageRatingDb is the derived summary row for one beverage. The human and
// expert halves are written independently: each upsert sets only its own
// fields so concurrent recomputations for different reviewer types never
// clobber each other.
type BeverageRatingDb struct {
	BeverageId       string  `json:"beverageId" bson:"beverageId"`
	SumRatingsHuman  int     `json:"sumRatingsHuman" bson:"sumRatingsHuman"`
	CountHuman       int     `json:"countHuman" bson:"countHuman"`
	SumRatingsExpert float64 `json:"sumRatingsExpert" bson:"sumRatingsExpert"`
	CountExpert      int     `json:"countExpert" bson:"countExpert"`
}

// ----- Methods for the database -----

func (db *DB) GetBeverageRating(ctx context.Context, beverageId string) (BeverageRatingDb, error) {
	coll := db.Collection(BeverageRatingsCollection)

	var aggregate BeverageRatingDb
	err := coll.FindOne(ctx, bson.M{"beverageId": beverageId}).Decode(&aggregate)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return BeverageRatingDb{}, ErrRecordNotFound
		}
		return BeverageRatingDb{}, err
	}

	return aggregate, nil
}

// UpsertHumanAggregate rewrites the human half of the summary row.
func (db *DB) UpsertHumanAggregate(ctx context.Context, beverageId string, sum, count int) error {
	coll := db.Collection(BeverageRatingsCollection)

	filter := bson.M{"beverageId": beverageId}
	update := bson.M{
		"$set": bson.M{
			"sumRatingsHuman": sum,
			"countHuman":      count,
		},
		"$setOnInsert": bson.M{"beverageId": beverageId},
	}

	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// UpsertExpertAggregate rewrites the expert half of the summary row.
func (db *DB) UpsertExpertAggregate(ctx context.Context, beverageId string, sum float64, count int) error {
	coll := db.Collection(BeverageRatingsCollection)

	filter := bson.M{"beverageId": beverageId}
	update := bson.M{
		"$set": bson.M{
			"sumRatingsExpert": sum,
			"countExpert":      count,
		},
		"$setOnInsert": bson.M{"beverageId": beverageId},
	}

	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
