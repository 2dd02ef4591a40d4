// Package social maintains mutual friendships. A friendship is two directed
// edge rows written independently — the store has no transactions, so the
// pair can end up half-applied on partial failure. The manager keeps both
// writes concurrent (shortest window), keeps badge recomputation idempotent,
// and ships a reconciliation routine that repairs half-applied pairs.
package social

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/sipzy/sipzy-backend/internal/store"
)

var (
	ErrMissingUser = errors.New("missing caller identity")
	ErrSelfFriend  = errors.New("cannot add yourself as a friend")
)

var ErrorMap = map[error]int{
	ErrMissingUser: http.StatusUnauthorized,
	ErrSelfFriend:  http.StatusBadRequest,
}

type Result struct {
	Message string `json:"message"`
}

type Store interface {
	UpsertFriendEdge(ctx context.Context, userId, friendId string) error
	DeleteFriendEdge(ctx context.Context, userId, friendId string) error
	GetFriendIds(ctx context.Context, userId string) ([]string, error)
	GetProfilesByIds(ctx context.Context, ids []string) ([]store.ProfileDb, error)
	ListFriendEdges(ctx context.Context) ([]store.FriendEdgeDb, error)
}

type Recomputer interface {
	RecomputeFriendsBadge(ctx context.Context, userId string) error
}

type Service struct {
	store     Store
	recompute Recomputer
}

func NewService(s Store, recompute Recomputer) *Service {
	return &Service{store: s, recompute: recompute}
}

// AddFriend writes both directed edges and recomputes both friendsCount
// badges. The two edge writes run concurrently and both are always attempted;
// there is no rollback when only one succeeds — the pair is then half-applied
// until a retry or Reconcile converges it.
func (s *Service) AddFriend(ctx context.Context, userId, friendId string) (Result, error) {
	if userId == "" {
		return Result{}, ErrMissingUser
	}
	if userId == friendId {
		return Result{}, ErrSelfFriend
	}

	if err := s.mutatePair(ctx, userId, friendId, s.store.UpsertFriendEdge); err != nil {
		return Result{}, err
	}

	if err := s.recomputeBoth(ctx, userId, friendId); err != nil {
		return Result{}, err
	}

	return Result{Message: "Friend added"}, nil
}

// RemoveFriend deletes both directed edges and recomputes both badges, with
// the same partial-failure caveat as AddFriend.
func (s *Service) RemoveFriend(ctx context.Context, userId, friendId string) (Result, error) {
	if userId == "" {
		return Result{}, ErrMissingUser
	}

	if err := s.mutatePair(ctx, userId, friendId, s.store.DeleteFriendEdge); err != nil {
		return Result{}, err
	}

	if err := s.recomputeBoth(ctx, userId, friendId); err != nil {
		return Result{}, err
	}

	return Result{Message: "Friend removed"}, nil
}

// ListFriends resolves the user's edges to profiles in a second query. Order
// is whatever the store returns.
func (s *Service) ListFriends(ctx context.Context, userId string) ([]store.ProfileDb, error) {
	if userId == "" {
		return nil, ErrMissingUser
	}

	friendIds, err := s.store.GetFriendIds(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(friendIds) == 0 {
		return []store.ProfileDb{}, nil
	}

	return s.store.GetProfilesByIds(ctx, friendIds)
}

// mutatePair applies the same edge mutation in both directions concurrently.
// A plain errgroup, not WithContext: one side failing must not cancel the
// other attempt.
func (s *Service) mutatePair(ctx context.Context, userId, friendId string, mutate func(context.Context, string, string) error) error {
	var g errgroup.Group
	g.Go(func() error { return mutate(ctx, userId, friendId) })
	g.Go(func() error { return mutate(ctx, friendId, userId) })
	return g.Wait()
}

func (s *Service) recomputeBoth(ctx context.Context, userId, friendId string) error {
	var g errgroup.Group
	g.Go(func() error { return s.recompute.RecomputeFriendsBadge(ctx, userId) })
	g.Go(func() error { return s.recompute.RecomputeFriendsBadge(ctx, friendId) })
	return g.Wait()
}
