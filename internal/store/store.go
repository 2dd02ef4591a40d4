// Package store is the Mongo-backed relational store for the SipZy backend.
// Every collection gets its own file with the methods the services need; the
// store offers per-statement atomicity only — no multi-document transactions.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var ErrRecordNotFound = errors.New("record not found in the database")

const (
	BeveragesCollection       = "beverages"
	UserRatingsCollection     = "userRatings"
	ExpertRatingsCollection   = "expertRatings"
	BeverageRatingsCollection = "beverageRatings"
	FriendsCollection         = "friends"
	BookmarksCollection       = "bookmarks"
	BadgesCollection          = "badges"
	ProfilesCollection        = "profiles"
	RestaurantsCollection     = "restaurants"
)

// duplicateSuffix is appended to every collection name outside production so
// that dev/staging traffic never touches the live collections.
const duplicateSuffix = "_duplicate"

type DB struct {
	client *mongo.Client
	name   string
	suffix string
}

// NewDB wraps a connected client. env selects the collection set: anything
// other than "production" resolves to the "_duplicate" collections.
func NewDB(client *mongo.Client, dbName, env string) *DB {
	suffix := duplicateSuffix
	if env == "production" {
		suffix = ""
	}
	return &DB{client: client, name: dbName, suffix: suffix}
}

// Connect connects to MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}

// Collection resolves a base collection name through the environment suffix.
// All store methods must go through here so a non-production deployment can
// never write a live collection.
func (db *DB) Collection(name string) *mongo.Collection {
	return db.client.Database(db.name).Collection(name + db.suffix)
}

func (db *DB) Database() *mongo.Database {
	return db.client.Database(db.name)
}
