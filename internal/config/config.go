package config

import (
	"fmt"
	"os"
)

// RecomputeMode controls how aggregate recomputation relates to the request
// that triggered it.
type RecomputeMode string

const (
	// RecomputeSync runs the recomputation before the response is written;
	// recompute failures propagate to the caller.
	RecomputeSync RecomputeMode = "sync"

	// RecomputeDetached runs the recomputation on its own goroutine after the
	// primary write; failures are logged and never surfaced to the caller.
	RecomputeDetached RecomputeMode = "detached"
)

type Config struct {
	Port     string
	MongoURI string
	MongoDb  string

	// Env selects the collection set: anything other than "production" reads
	// and writes the "_duplicate"-suffixed collections.
	Env string

	RecomputeMode      RecomputeMode
	RecomputeSerialize bool

	// ExpertRatingOverwrite makes repeat expert ratings for the same beverage
	// replace the previous one instead of accumulating.
	ExpertRatingOverwrite bool
}

// Load reads the configuration from environment variables. Callers are
// expected to have run godotenv.Load() first.
func Load() (Config, error) {
	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		MongoURI:              os.Getenv("MONGODB_URI"),
		MongoDb:               getEnv("MONGODB_DB", "sipzy"),
		Env:                   getEnv("APP_ENV", "development"),
		RecomputeMode:         RecomputeMode(getEnv("RECOMPUTE_MODE", string(RecomputeSync))),
		RecomputeSerialize:    getEnv("RECOMPUTE_SERIALIZE", "false") == "true",
		ExpertRatingOverwrite: getEnv("EXPERT_RATING_OVERWRITE", "false") == "true",
	}

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGODB_URI is required (e.g. mongodb://localhost:27017)")
	}

	switch cfg.RecomputeMode {
	case RecomputeSync, RecomputeDetached:
	default:
		return Config{}, fmt.Errorf("RECOMPUTE_MODE must be %q or %q, got %q",
			RecomputeSync, RecomputeDetached, cfg.RecomputeMode)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
