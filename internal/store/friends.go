package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

// FriendEdgeDb is one direction of a friendship. A logical friendship between
// A and B is two rows, (A,B) and (B,A); nothing in the store ties them
// together, so callers must write and delete them as a pair.
type FriendEdgeDb struct {
	UserId    string    `json:"userId" bson:"userId"`
	FriendId  string    `json:"friendId" bson:"friendId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ----- Methods for the database -----

// UpsertFriendEdge writes one directed edge. Idempotent: re-adding an
// existing friendship is a no-op.
func (db *DB) UpsertFriendEdge(ctx context.Context, userId, friendId string) error {
	coll := db.Collection(FriendsCollection)

	filter := bson.M{"userId": userId, "friendId": friendId}
	update := bson.M{
		"$setOnInsert": bson.M{
			"userId":    userId,
			"friendId":  friendId,
			"createdAt": time.Now(),
		},
	}

	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (db *DB) DeleteFriendEdge(ctx context.Context, userId, friendId string) error {
	coll := db.Collection(FriendsCollection)

	_, err := coll.DeleteOne(ctx, bson.M{"userId": userId, "friendId": friendId})
	return err
}

func (db *DB) GetFriendIds(ctx context.Context, userId string) ([]string, error) {
	coll := db.Collection(FriendsCollection)

	cursor, err := coll.Find(ctx, bson.M{"userId": userId})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var edges []FriendEdgeDb
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, err
	}

	friendIds := make([]string, 0, len(edges))
	for _, edge := range edges {
		friendIds = append(friendIds, edge.FriendId)
	}
	return friendIds, nil
}

// CountFriendEdges is the fresh count the friendsCount badge is derived from.
func (db *DB) CountFriendEdges(ctx context.Context, userId string) (int64, error) {
	coll := db.Collection(FriendsCollection)
	return coll.CountDocuments(ctx, bson.M{"userId": userId})
}

// ListFriendEdges returns every directed edge. Used by the reconciliation
// routine; the friends collection is assumed to stay small enough for a full
// scan.
func (db *DB) ListFriendEdges(ctx context.Context) ([]FriendEdgeDb, error) {
	coll := db.Collection(FriendsCollection)

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var edges []FriendEdgeDb
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (db *DB) DistinctFriendUserIds(ctx context.Context) ([]string, error) {
	coll := db.Collection(FriendsCollection)

	values, err := coll.Distinct(ctx, "userId", bson.M{})
	if err != nil {
		return nil, err
	}
	return distinctToStrings(values), nil
}
