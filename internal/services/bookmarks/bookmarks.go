// Package bookmarks maintains the single-sided bookmark edge and its derived
// bookmarkCount badge. Same recompute-from-fresh-count pattern as the
// friendship path, without the symmetry requirement.
package bookmarks

import (
	"context"
	"errors"
	"net/http"

	"github.com/sipzy/sipzy-backend/internal/store"
)

var (
	ErrMissingUser        = errors.New("missing caller identity")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

var ErrorMap = map[error]int{
	ErrMissingUser:        http.StatusUnauthorized,
	ErrRestaurantNotFound: http.StatusNotFound,
}

type Result struct {
	Message string `json:"message"`
}

type Store interface {
	RestaurantExists(ctx context.Context, id string) (bool, error)
	UpsertBookmark(ctx context.Context, userId, restaurantId string) error
	DeleteBookmark(ctx context.Context, userId, restaurantId string) error
	GetBookmarkedRestaurantIds(ctx context.Context, userId string) ([]string, error)
	GetRestaurantsByIds(ctx context.Context, ids []string) ([]store.RestaurantDb, error)
}

type Recomputer interface {
	RecomputeBookmarkBadge(ctx context.Context, userId string) error
}

type Service struct {
	store     Store
	recompute Recomputer
}

func NewService(s Store, recompute Recomputer) *Service {
	return &Service{store: s, recompute: recompute}
}

func (s *Service) Add(ctx context.Context, userId, restaurantId string) (Result, error) {
	if userId == "" {
		return Result{}, ErrMissingUser
	}

	exists, err := s.store.RestaurantExists(ctx, restaurantId)
	if err != nil {
		return Result{}, err
	}
	if !exists {
		return Result{}, ErrRestaurantNotFound
	}

	if err := s.store.UpsertBookmark(ctx, userId, restaurantId); err != nil {
		return Result{}, err
	}

	if err := s.recompute.RecomputeBookmarkBadge(ctx, userId); err != nil {
		return Result{}, err
	}

	return Result{Message: "Bookmark added"}, nil
}

func (s *Service) Remove(ctx context.Context, userId, restaurantId string) (Result, error) {
	if userId == "" {
		return Result{}, ErrMissingUser
	}

	if err := s.store.DeleteBookmark(ctx, userId, restaurantId); err != nil {
		return Result{}, err
	}

	if err := s.recompute.RecomputeBookmarkBadge(ctx, userId); err != nil {
		return Result{}, err
	}

	return Result{Message: "Bookmark removed"}, nil
}

// List resolves the user's bookmarks to restaurants in a second query.
func (s *Service) List(ctx context.Context, userId string) ([]store.RestaurantDb, error) {
	if userId == "" {
		return nil, ErrMissingUser
	}

	restaurantIds, err := s.store.GetBookmarkedRestaurantIds(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(restaurantIds) == 0 {
		return []store.RestaurantDb{}, nil
	}

	return s.store.GetRestaurantsByIds(ctx, restaurantIds)
}
