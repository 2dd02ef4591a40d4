// Maintenance routines for the derived state: friendship reconciliation and
// a full re-derivation sweep of aggregates and badges. Nothing here invents
// data — every routine recomputes projections from the raw rows, so running
// the sweep twice is harmless.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/sipzy/sipzy-backend/internal/aggregate"
	"github.com/sipzy/sipzy-backend/internal/config"
	"github.com/sipzy/sipzy-backend/internal/services/social"
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

	// Repairs always run synchronously regardless of the service's mode.
	engine := aggregate.NewEngine(db, config.RecomputeSync, cfg.RecomputeSerialize)

	reconcile := flag.Bool("reconcile", false, "repair half-applied friendship pairs and recount their badges")
	recompute := flag.Bool("recompute", false, "re-derive every beverage aggregate and every badge from the raw rows")

	flag.Parse()

	switch {
	case *reconcile:
		socialSvc := social.NewService(db, engine)
		report, err := socialSvc.Reconcile(ctx)
		if err != nil {
			log.Fatalf("Reconciliation failed: %v", err)
		}
		fmt.Printf("✅ Reconciliation done: %d edges scanned, %d repaired, %d badges recounted\n",
			report.EdgesScanned, report.EdgesRepaired, len(report.UsersRecounted))

	case *recompute:
		if err := recomputeAll(ctx, db, engine); err != nil {
			log.Fatalf("Recompute sweep failed: %v", err)
		}
		fmt.Println("✅ Recompute sweep done")

	default:
		fmt.Println("No valid command specified.")
		flag.Usage()
	}
}

func recomputeAll(ctx context.Context, db *store.DB, engine *aggregate.Engine) error {
	beverageIds, err := db.DistinctRatedBeverageIds(ctx)
	if err != nil {
		return err
	}
	for _, beverageId := range beverageIds {
		if err := engine.RecomputeBeverage(ctx, beverageId); err != nil {
			return err
		}
	}

	expertBeverageIds, err := db.DistinctExpertRatedBeverageIds(ctx)
	if err != nil {
		return err
	}
	for _, beverageId := range expertBeverageIds {
		if err := engine.RecomputeExpert(ctx, beverageId); err != nil {
			return err
		}
	}

	friendUserIds, err := db.DistinctFriendUserIds(ctx)
	if err != nil {
		return err
	}
	for _, userId := range friendUserIds {
		if err := engine.RecomputeFriendsBadge(ctx, userId); err != nil {
			return err
		}
	}

	bookmarkUserIds, err := db.DistinctBookmarkUserIds(ctx)
	if err != nil {
		return err
	}
	for _, userId := range bookmarkUserIds {
		if err := engine.RecomputeBookmarkBadge(ctx, userId); err != nil {
			return err
		}
	}

	fmt.Printf("Recomputed %d human aggregates, %d expert aggregates, %d friend badges, %d bookmark badges\n",
		len(beverageIds), len(expertBeverageIds), len(friendUserIds), len(bookmarkUserIds))
	return nil
}
