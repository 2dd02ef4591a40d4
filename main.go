package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sipzy/sipzy-backend/internal/aggregate"
	"github.com/sipzy/sipzy-backend/internal/api"
	"github.com/sipzy/sipzy-backend/internal/config"
	"github.com/sipzy/sipzy-backend/internal/server"
	"github.com/sipzy/sipzy-backend/internal/services/beverages"
	"github.com/sipzy/sipzy-backend/internal/services/bookmarks"
	"github.com/sipzy/sipzy-backend/internal/services/experts"
	"github.com/sipzy/sipzy-backend/internal/services/social"
	"github.com/sipzy/sipzy-backend/internal/store"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := store.NewDB(client, cfg.MongoDb, cfg.Env)
	engine := aggregate.NewEngine(db, cfg.RecomputeMode, cfg.RecomputeSerialize)

	a := api.NewAPI(
		beverages.NewService(db, engine),
		experts.NewService(db, engine, cfg.ExpertRatingOverwrite),
		social.NewService(db, engine),
		bookmarks.NewService(db, engine),
	)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.NewServer(a),
	}

	go func() {
		log.Printf("Server is running on port %s (env=%s, recompute=%s)", cfg.Port, cfg.Env, cfg.RecomputeMode)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	// Detached recomputations outlive their requests; let them settle before
	// the process exits.
	engine.Wait()
}
