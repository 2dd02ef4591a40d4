package beverages

import "github.com/sipzy/sipzy-backend/internal/store"

type NewRatingRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comments string `json:"comments" validate:"omitempty,max=2000"`
}

type RatingResult struct {
	Message string `json:"message"`
}

// AggregatedRatings is the read-side view of the summary row. Averages are
// derived on read, never stored.
type AggregatedRatings struct {
	AvgHuman    float64 `json:"avgHuman"`
	CountHuman  int     `json:"countHuman"`
	AvgExpert   float64 `json:"avgExpert"`
	CountExpert int     `json:"countExpert"`
}

type BeverageDetails struct {
	store.BeverageDb
	Ratings AggregatedRatings `json:"ratings"`
}
