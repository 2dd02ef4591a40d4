package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

// BadgeDb is the per-user projection of derived counters. It is never
// adjusted incrementally: each counter is rewritten from a fresh count after
// the mutation that touched it, so missed updates cannot drift — only lag.
type BadgeDb struct {
	UserId        string `json:"userId" bson:"userId"`
	FriendsCount  int64  `json:"friendsCount" bson:"friendsCount"`
	BookmarkCount int64  `json:"bookmarkCount" bson:"bookmarkCount"`
}

// ----- Methods for the database -----

func (db *DB) GetBadge(ctx context.Context, userId string) (BadgeDb, error) {
	coll := db.Collection(BadgesCollection)

	var badge BadgeDb
	err := coll.FindOne(ctx, bson.M{"userId": userId}).Decode(&badge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return BadgeDb{}, ErrRecordNotFound
		}
		return BadgeDb{}, err
	}

	return badge, nil
}

// UpsertFriendsBadge rewrites friendsCount only, leaving bookmarkCount alone.
func (db *DB) UpsertFriendsBadge(ctx context.Context, userId string, friendsCount int64) error {
	coll := db.Collection(BadgesCollection)

	filter := bson.M{"userId": userId}
	update := bson.M{
		"$set":         bson.M{"friendsCount": friendsCount},
		"$setOnInsert": bson.M{"userId": userId},
	}

	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// UpsertBookmarkBadge rewrites bookmarkCount only, leaving friendsCount alone.
func (db *DB) UpsertBookmarkBadge(ctx context.Context, userId string, bookmarkCount int64) error {
	coll := db.Collection(BadgesCollection)

	filter := bson.M{"userId": userId}
	update := bson.M{
		"$set":         bson.M{"bookmarkCount": bookmarkCount},
		"$setOnInsert": bson.M{"userId": userId},
	}

	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
