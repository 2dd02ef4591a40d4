// Package experts implements the expert rating pipeline: four sub-scores per
// rating, folded to a 1..5 mean before aggregation.
package experts

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sipzy/sipzy-backend/internal/store"
)

var (
	ErrMissingExpert    = errors.New("missing caller identity")
	ErrInvalidRating    = errors.New("all four ratings must be integers between 1 and 5")
	ErrBeverageNotFound = errors.New("beverage not found")
)

var ErrorMap = map[error]int{
	ErrMissingExpert:    http.StatusUnauthorized,
	ErrInvalidRating:    http.StatusBadRequest,
	ErrBeverageNotFound: http.StatusNotFound,
}

type NewExpertRatingRequest struct {
	PresentationRating int `json:"presentationRating" validate:"required,min=1,max=5"`
	TasteRating        int `json:"tasteRating" validate:"required,min=1,max=5"`
	IngredientsRating  int `json:"ingredientsRating" validate:"required,min=1,max=5"`
	AccuracyRating     int `json:"accuracyRating" validate:"required,min=1,max=5"`
}

type RatingResult struct {
	Message string `json:"message"`
}

// ExpertAverage is the per-expert view used by expert listings: the mean of
// that expert's folded ratings, rounded to one decimal.
type ExpertAverage struct {
	ExpertId     string  `json:"expertId"`
	AvgRating    float64 `json:"avgRating"`
	TotalRatings int     `json:"totalRatings"`
}

type Store interface {
	BeverageExists(ctx context.Context, id string) (bool, error)
	AddExpertRating(ctx context.Context, rating store.ExpertRatingDb) (store.ExpertRatingDb, error)
	UpsertExpertRating(ctx context.Context, rating store.ExpertRatingDb) (store.ExpertRatingDb, error)
	GetExpertRatingsByExpertId(ctx context.Context, expertId string, limit int64) ([]store.ExpertRatingDb, error)
}

type Recomputer interface {
	RecomputeExpert(ctx context.Context, beverageId string) error
}

type Service struct {
	store     Store
	recompute Recomputer
	validate  *validator.Validate

	// overwrite makes repeat ratings from the same expert for the same
	// beverage replace the prior one instead of accumulating.
	overwrite bool
}

func NewService(s Store, recompute Recomputer, overwrite bool) *Service {
	return &Service{
		store:     s,
		recompute: recompute,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		overwrite: overwrite,
	}
}

// SubmitRating stores one expert rating and triggers recomputation of the
// expert half of the beverage aggregate.
func (s *Service) SubmitRating(ctx context.Context, expertId, beverageId string, req NewExpertRatingRequest) (RatingResult, error) {
	if expertId == "" {
		return RatingResult{}, ErrMissingExpert
	}
	if err := s.validate.Struct(req); err != nil {
		return RatingResult{}, ErrInvalidRating
	}

	exists, err := s.store.BeverageExists(ctx, beverageId)
	if err != nil {
		return RatingResult{}, err
	}
	if !exists {
		return RatingResult{}, ErrBeverageNotFound
	}

	rating := store.ExpertRatingDb{
		ExpertId:           expertId,
		BeverageId:         beverageId,
		PresentationRating: req.PresentationRating,
		TasteRating:        req.TasteRating,
		IngredientsRating:  req.IngredientsRating,
		AccuracyRating:     req.AccuracyRating,
	}

	if s.overwrite {
		_, err = s.store.UpsertExpertRating(ctx, rating)
	} else {
		_, err = s.store.AddExpertRating(ctx, rating)
	}
	if err != nil {
		return RatingResult{}, err
	}

	if err := s.recompute.RecomputeExpert(ctx, beverageId); err != nil {
		return RatingResult{}, err
	}

	return RatingResult{Message: "Expert rating saved"}, nil
}

// AverageForExpert folds every rating by the expert to its four-score mean
// and averages those, rounded to one decimal.
func (s *Service) AverageForExpert(ctx context.Context, expertId string) (ExpertAverage, error) {
	ratings, err := s.store.GetExpertRatingsByExpertId(ctx, expertId, 0)
	if err != nil {
		return ExpertAverage{}, err
	}

	average := ExpertAverage{ExpertId: expertId, TotalRatings: len(ratings)}
	if len(ratings) == 0 {
		return average, nil
	}

	sum := 0.0
	for _, rating := range ratings {
		sum += float64(rating.PresentationRating+
			rating.TasteRating+
			rating.IngredientsRating+
			rating.AccuracyRating) / 4
	}
	average.AvgRating = math.Round(sum/float64(len(ratings))*10) / 10

	return average, nil
}
