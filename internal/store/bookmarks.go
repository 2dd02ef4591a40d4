package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

type BookmarkDb struct {
	UserId       string    `json:"userId" bson:"userId"`
	RestaurantId string    `json:"restaurantId" bson:"restaurantId"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// ----- Methods for the database -----

func (db *DB) UpsertBookmark(ctx context.Context, userId, restaurantId string) error {
	coll := db.Collection(BookmarksCollection)

	filter := bson.M{"userId": userId, "restaurantId": restaurantId}
	update := bson.M{
		"$setOnInsert": bson.M{
			"userId":       userId,
			"restaurantId": restaurantId,
			"createdAt":    time.Now(),
		},
	}

	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (db *DB) DeleteBookmark(ctx context.Context, userId, restaurantId string) error {
	coll := db.Collection(BookmarksCollection)

	_, err := coll.DeleteOne(ctx, bson.M{"userId": userId, "restaurantId": restaurantId})
	return err
}

func (db *DB) GetBookmarkedRestaurantIds(ctx context.Context, userId string) ([]string, error) {
	coll := db.Collection(BookmarksCollection)

	cursor, err := coll.Find(ctx, bson.M{"userId": userId})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookmarks []BookmarkDb
	if err := cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}

	restaurantIds := make([]string, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		restaurantIds = append(restaurantIds, bookmark.RestaurantId)
	}
	return restaurantIds, nil
}

// CountBookmarks is the fresh count the bookmarkCount badge is derived from.
func (db *DB) CountBookmarks(ctx context.Context, userId string) (int64, error) {
	coll := db.Collection(BookmarksCollection)
	return coll.CountDocuments(ctx, bson.M{"userId": userId})
}

func (db *DB) DistinctBookmarkUserIds(ctx context.Context) ([]string, error) {
	coll := db.Collection(BookmarksCollection)

	values, err := coll.Distinct(ctx, "userId", bson.M{})
	if err != nil {
		return nil, err
	}
	return distinctToStrings(values), nil
}
