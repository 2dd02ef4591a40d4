// Package storetest is an in-memory stand-in for *store.DB, implementing the
// narrow interfaces the services and the recomputation engine consume. Unit
// tests use it to exercise the derived-state logic without a database; the
// HTTP integration suite covers the real store.
package storetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/sipzy/sipzy-backend/internal/store"
)

type Store struct {
	mu sync.Mutex

	UserRatings   map[[2]string]store.UserRatingDb // (userId, beverageId)
	ExpertRatings []store.ExpertRatingDb
	Aggregates    map[string]store.BeverageRatingDb
	FriendEdges   map[[2]string]store.FriendEdgeDb // (userId, friendId)
	Bookmarks     map[[2]string]store.BookmarkDb   // (userId, restaurantId)
	Badges        map[string]store.BadgeDb
	Beverages     map[string]store.BeverageDb
	Restaurants   map[string]store.RestaurantDb
	Profiles      map[string]store.ProfileDb

	// Error injection: non-nil values make the matching method fail.
	ReadUserRatingsErr   error
	ReadExpertRatingsErr error
	UpsertHumanErr       error
	EdgeInsertErr        map[[2]string]error

	// Call counters for asserting that a failed read never reaches the
	// write-back.
	HumanAggregateUpserts  int
	ExpertAggregateUpserts int
}

func New() *Store {
	return &Store{
		UserRatings:   make(map[[2]string]store.UserRatingDb),
		Aggregates:    make(map[string]store.BeverageRatingDb),
		FriendEdges:   make(map[[2]string]store.FriendEdgeDb),
		Bookmarks:     make(map[[2]string]store.BookmarkDb),
		Badges:        make(map[string]store.BadgeDb),
		Beverages:     make(map[string]store.BeverageDb),
		Restaurants:   make(map[string]store.RestaurantDb),
		Profiles:      make(map[string]store.ProfileDb),
		EdgeInsertErr: make(map[[2]string]error),
	}
}

// ----- user ratings -----

func (s *Store) UpsertUserRating(ctx context.Context, rating store.UserRatingDb) (store.UserRatingDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UserRatings[[2]string{rating.UserId, rating.BeverageId}] = rating
	return rating, nil
}

func (s *Store) GetUserRatingsByBeverageId(ctx context.Context, beverageId string) ([]store.UserRatingDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadUserRatingsErr != nil {
		return nil, s.ReadUserRatingsErr
	}
	var out []store.UserRatingDb
	for key, rating := range s.UserRatings {
		if key[1] == beverageId {
			out = append(out, rating)
		}
	}
	return out, nil
}

// ----- expert ratings -----

func (s *Store) AddExpertRating(ctx context.Context, rating store.ExpertRatingDb) (store.ExpertRatingDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rating.Id = fmt.Sprintf("expert-rating-%d", len(s.ExpertRatings)+1)
	s.ExpertRatings = append(s.ExpertRatings, rating)
	return rating, nil
}

func (s *Store) UpsertExpertRating(ctx context.Context, rating store.ExpertRatingDb) (store.ExpertRatingDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.ExpertRatings {
		if existing.ExpertId == rating.ExpertId && existing.BeverageId == rating.BeverageId {
			rating.Id = existing.Id
			s.ExpertRatings[i] = rating
			return rating, nil
		}
	}
	rating.Id = fmt.Sprintf("expert-rating-%d", len(s.ExpertRatings)+1)
	s.ExpertRatings = append(s.ExpertRatings, rating)
	return rating, nil
}

func (s *Store) GetExpertRatingsByBeverageId(ctx context.Context, beverageId string) ([]store.ExpertRatingDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadExpertRatingsErr != nil {
		return nil, s.ReadExpertRatingsErr
	}
	var out []store.ExpertRatingDb
	for _, rating := range s.ExpertRatings {
		if rating.BeverageId == beverageId {
			out = append(out, rating)
		}
	}
	return out, nil
}

func (s *Store) GetExpertRatingsByExpertId(ctx context.Context, expertId string, limit int64) ([]store.ExpertRatingDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []store.ExpertRatingDb
	for _, rating := range s.ExpertRatings {
		if rating.ExpertId == expertId {
			out = append(out, rating)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ----- aggregates -----

func (s *Store) GetBeverageRating(ctx context.Context, beverageId string) (store.BeverageRatingDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	aggregate, ok := s.Aggregates[beverageId]
	if !ok {
		return store.BeverageRatingDb{}, store.ErrRecordNotFound
	}
	return aggregate, nil
}

func (s *Store) UpsertHumanAggregate(ctx context.Context, beverageId string, sum, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpsertHumanErr != nil {
		return s.UpsertHumanErr
	}
	s.HumanAggregateUpserts++
	aggregate := s.Aggregates[beverageId]
	aggregate.BeverageId = beverageId
	aggregate.SumRatingsHuman = sum
	aggregate.CountHuman = count
	s.Aggregates[beverageId] = aggregate
	return nil
}

func (s *Store) UpsertExpertAggregate(ctx context.Context, beverageId string, sum float64, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ExpertAggregateUpserts++
	aggregate := s.Aggregates[beverageId]
	aggregate.BeverageId = beverageId
	aggregate.SumRatingsExpert = sum
	aggregate.CountExpert = count
	s.Aggregates[beverageId] = aggregate
	return nil
}

// ----- friends -----

func (s *Store) UpsertFriendEdge(ctx context.Context, userId, friendId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]string{userId, friendId}
	if err := s.EdgeInsertErr[key]; err != nil {
		return err
	}
	if _, ok := s.FriendEdges[key]; !ok {
		s.FriendEdges[key] = store.FriendEdgeDb{UserId: userId, FriendId: friendId}
	}
	return nil
}

func (s *Store) DeleteFriendEdge(ctx context.Context, userId, friendId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.FriendEdges, [2]string{userId, friendId})
	return nil
}

func (s *Store) GetFriendIds(ctx context.Context, userId string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for key := range s.FriendEdges {
		if key[0] == userId {
			out = append(out, key[1])
		}
	}
	return out, nil
}

func (s *Store) CountFriendEdges(ctx context.Context, userId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for key := range s.FriendEdges {
		if key[0] == userId {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListFriendEdges(ctx context.Context) ([]store.FriendEdgeDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []store.FriendEdgeDb
	for _, edge := range s.FriendEdges {
		out = append(out, edge)
	}
	return out, nil
}

// ----- bookmarks -----

func (s *Store) UpsertBookmark(ctx context.Context, userId, restaurantId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]string{userId, restaurantId}
	if _, ok := s.Bookmarks[key]; !ok {
		s.Bookmarks[key] = store.BookmarkDb{UserId: userId, RestaurantId: restaurantId}
	}
	return nil
}

func (s *Store) DeleteBookmark(ctx context.Context, userId, restaurantId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Bookmarks, [2]string{userId, restaurantId})
	return nil
}

func (s *Store) GetBookmarkedRestaurantIds(ctx context.Context, userId string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for key := range s.Bookmarks {
		if key[0] == userId {
			out = append(out, key[1])
		}
	}
	return out, nil
}

func (s *Store) CountBookmarks(ctx context.Context, userId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for key := range s.Bookmarks {
		if key[0] == userId {
			count++
		}
	}
	return count, nil
}

// ----- badges -----

func (s *Store) UpsertFriendsBadge(ctx context.Context, userId string, friendsCount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	badge := s.Badges[userId]
	badge.UserId = userId
	badge.FriendsCount = friendsCount
	s.Badges[userId] = badge
	return nil
}

func (s *Store) UpsertBookmarkBadge(ctx context.Context, userId string, bookmarkCount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	badge := s.Badges[userId]
	badge.UserId = userId
	badge.BookmarkCount = bookmarkCount
	s.Badges[userId] = badge
	return nil
}

// ----- referenced entities -----

func (s *Store) GetBeverageById(ctx context.Context, id string) (store.BeverageDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	beverage, ok := s.Beverages[id]
	if !ok {
		return store.BeverageDb{}, store.ErrRecordNotFound
	}
	return beverage, nil
}

func (s *Store) BeverageExists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Beverages[id]
	return ok, nil
}

func (s *Store) RestaurantExists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Restaurants[id]
	return ok, nil
}

func (s *Store) GetRestaurantsByIds(ctx context.Context, ids []string) ([]store.RestaurantDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []store.RestaurantDb{}
	for _, id := range ids {
		if restaurant, ok := s.Restaurants[id]; ok {
			out = append(out, restaurant)
		}
	}
	return out, nil
}

func (s *Store) GetProfilesByIds(ctx context.Context, ids []string) ([]store.ProfileDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []store.ProfileDb{}
	for _, id := range ids {
		if profile, ok := s.Profiles[id]; ok {
			out = append(out, profile)
		}
	}
	return out, nil
}
