package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileDb struct {
	Id    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

func (db *DB) GetProfileById(ctx context.Context, id string) (ProfileDb, error) {
	coll := db.Collection(ProfilesCollection)

	var profile ProfileDb
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ProfileDb{}, ErrRecordNotFound
		}
		return ProfileDb{}, err
	}

	return profile, nil
}

// GetProfilesByIds resolves friend ids to profiles. Only id, name and phone
// are fetched; order is whatever the store returns.
func (db *DB) GetProfilesByIds(ctx context.Context, ids []string) ([]ProfileDb, error) {
	if len(ids) == 0 {
		return []ProfileDb{}, nil
	}

	coll := db.Collection(ProfilesCollection)

	filter := bson.M{"_id": bson.M{"$in": ids}}
	opts := options.Find().SetProjection(bson.M{
		"_id":   1,
		"name":  1,
		"phone": 1,
	})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return []ProfileDb{}, err
	}
	defer cursor.Close(ctx)

	var profiles []ProfileDb
	if err := cursor.All(ctx, &profiles); err != nil {
		return []ProfileDb{}, err
	}

	return profiles, nil
}
