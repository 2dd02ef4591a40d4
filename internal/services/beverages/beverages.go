// Package beverages implements the human rating submission flow and the
// beverage read paths that expose the derived aggregates.
package beverages

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sipzy/sipzy-backend/internal/store"
)

var (
	ErrMissingUser      = errors.New("missing caller identity")
	ErrInvalidRating    = errors.New("rating must be an integer between 1 and 5")
	ErrBeverageNotFound = errors.New("beverage not found")
)

var ErrorMap = map[error]int{
	ErrMissingUser:      http.StatusUnauthorized,
	ErrInvalidRating:    http.StatusBadRequest,
	ErrBeverageNotFound: http.StatusNotFound,
}

// Store is the slice of the relational store this service needs.
type Store interface {
	GetBeverageById(ctx context.Context, id string) (store.BeverageDb, error)
	BeverageExists(ctx context.Context, id string) (bool, error)
	GetBeverageRating(ctx context.Context, beverageId string) (store.BeverageRatingDb, error)
	UpsertUserRating(ctx context.Context, rating store.UserRatingDb) (store.UserRatingDb, error)
}

// Recomputer triggers the aggregate rewrite after the primary write. Whether
// the call blocks and whether its failure reaches the caller depends on the
// configured recompute mode.
type Recomputer interface {
	RecomputeBeverage(ctx context.Context, beverageId string) error
}

type Service struct {
	store     Store
	recompute Recomputer
	validate  *validator.Validate
}

func NewService(s Store, recompute Recomputer) *Service {
	return &Service{
		store:     s,
		recompute: recompute,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SubmitRating validates and upserts one user's rating for a beverage, then
// triggers recomputation of the beverage aggregate. The fresh numbers are
// never returned inline; callers re-fetch if they need them.
func (s *Service) SubmitRating(ctx context.Context, userId, beverageId string, req NewRatingRequest) (RatingResult, error) {
	if userId == "" {
		return RatingResult{}, ErrMissingUser
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

	_, err = s.store.UpsertUserRating(ctx, store.UserRatingDb{
		UserId:     userId,
		BeverageId: beverageId,
		Rating:     req.Rating,
		Comments:   req.Comments,
	})
	if err != nil {
		return RatingResult{}, err
	}

	if err := s.recompute.RecomputeBeverage(ctx, beverageId); err != nil {
		return RatingResult{}, err
	}

	return RatingResult{Message: "Rating saved"}, nil
}

// GetRatings returns the aggregated view for a beverage. A missing summary
// row reads as all zeros, matching a beverage nobody has rated yet.
func (s *Service) GetRatings(ctx context.Context, beverageId string) (AggregatedRatings, error) {
	aggregate, err := s.store.GetBeverageRating(ctx, beverageId)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return AggregatedRatings{}, nil
		}
		return AggregatedRatings{}, err
	}

	return aggregatedView(aggregate), nil
}

// GetDetails returns the beverage joined with its aggregated ratings.
func (s *Service) GetDetails(ctx context.Context, beverageId string) (BeverageDetails, error) {
	beverage, err := s.store.GetBeverageById(ctx, beverageId)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return BeverageDetails{}, ErrBeverageNotFound
		}
		return BeverageDetails{}, err
	}

	ratings, err := s.GetRatings(ctx, beverageId)
	if err != nil {
		return BeverageDetails{}, err
	}

	return BeverageDetails{BeverageDb: beverage, Ratings: ratings}, nil
}

func aggregatedView(aggregate store.BeverageRatingDb) AggregatedRatings {
	view := AggregatedRatings{
		CountHuman:  aggregate.CountHuman,
		CountExpert: aggregate.CountExpert,
	}
	if aggregate.CountHuman > 0 {
		view.AvgHuman = float64(aggregate.SumRatingsHuman) / float64(aggregate.CountHuman)
	}
	if aggregate.CountExpert > 0 {
		view.AvgExpert = aggregate.SumRatingsExpert / float64(aggregate.CountExpert)
	}
	return view
}
