package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/sipzy/sipzy-backend/internal/config"
	"github.com/sipzy/sipzy-backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := store.NewDB(client, cfg.MongoDb, cfg.Env)

	indexes := flag.Bool("indexes", false, "create indexes in the database if they do not exist")
	resetIndexes := flag.Bool("reset", false, "delete the indexes and recreate them")

	flag.Parse()

	switch {
	case *indexes:
		if err := db.CreateAllIndexes(ctx, *resetIndexes); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		fmt.Println("✅ Indexes command ran successfully!")

	default:
		fmt.Println("No valid command specified.")
		flag.Usage()
	}
}
