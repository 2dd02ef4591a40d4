package aggregate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sipzy/sipzy-backend/internal/config"
	"github.com/sipzy/sipzy-backend/internal/store"
	"github.com/sipzy/sipzy-backend/internal/store/storetest"
)

func seedUserRating(s *storetest.Store, userId, beverageId string, rating int) {
	s.UserRatings[[2]string{userId, beverageId}] = store.UserRatingDb{
		UserId:     userId,
		BeverageId: beverageId,
		Rating:     rating,
	}
}

func TestRecomputeBeverage(t *testing.T) {
	ctx := context.Background()

	t.Run("Aggregate is the exact sum and count of the raw rows", func(t *testing.T) {
		fake := storetest.New()
		seedUserRating(fake, "u1", "bev1", 5)
		seedUserRating(fake, "u2", "bev1", 3)
		seedUserRating(fake, "u3", "bev2", 1) // other beverage, must not leak in

		engine := NewEngine(fake, config.RecomputeSync, false)
		require.NoError(t, engine.RecomputeBeverage(ctx, "bev1"))

		aggregate := fake.Aggregates["bev1"]
		require.Equal(t, 8, aggregate.SumRatingsHuman)
		require.Equal(t, 2, aggregate.CountHuman)
	})

	t.Run("No ratings produces a zero aggregate, not a missing one", func(t *testing.T) {
		fake := storetest.New()

		engine := NewEngine(fake, config.RecomputeSync, false)
		require.NoError(t, engine.RecomputeBeverage(ctx, "bev1"))

		aggregate, ok := fake.Aggregates["bev1"]
		require.True(t, ok)
		require.Equal(t, 0, aggregate.SumRatingsHuman)
		require.Equal(t, 0, aggregate.CountHuman)
	})

	t.Run("Recompute is idempotent with no intervening writes", func(t *testing.T) {
		fake := storetest.New()
		seedUserRating(fake, "u1", "bev1", 4)

		engine := NewEngine(fake, config.RecomputeSync, false)
		require.NoError(t, engine.RecomputeBeverage(ctx, "bev1"))
		first := fake.Aggregates["bev1"]

		require.NoError(t, engine.RecomputeBeverage(ctx, "bev1"))
		require.Equal(t, first, fake.Aggregates["bev1"])
		require.Equal(t, 2, fake.HumanAggregateUpserts)
	})

	t.Run("Read failure aborts before the write-back", func(t *testing.T) {
		fake := storetest.New()
		fake.ReadUserRatingsErr = errors.New("store unavailable")

		engine := NewEngine(fake, config.RecomputeSync, false)
		require.Error(t, engine.RecomputeBeverage(ctx, "bev1"))
		require.Zero(t, fake.HumanAggregateUpserts)
	})

	t.Run("Human recompute leaves the expert half untouched", func(t *testing.T) {
		fake := storetest.New()
		fake.Aggregates["bev1"] = store.BeverageRatingDb{
			BeverageId:       "bev1",
			SumRatingsExpert: 4.5,
			CountExpert:      1,
		}
		seedUserRating(fake, "u1", "bev1", 5)

		engine := NewEngine(fake, config.RecomputeSync, false)
		require.NoError(t, engine.RecomputeBeverage(ctx, "bev1"))

		aggregate := fake.Aggregates["bev1"]
		require.Equal(t, 5, aggregate.SumRatingsHuman)
		require.Equal(t, 1, aggregate.CountHuman)
		require.Equal(t, 4.5, aggregate.SumRatingsExpert)
		require.Equal(t, 1, aggregate.CountExpert)
	})
}

func TestRecomputeExpert(t *testing.T) {
	ctx := context.Background()

	t.Run("Each expert rating folds to the mean of its four sub-scores", func(t *testing.T) {
		fake := storetest.New()
		fake.ExpertRatings = []store.ExpertRatingDb{
			{ExpertId: "e1", BeverageId: "bev1", PresentationRating: 5, TasteRating: 5, IngredientsRating: 5, AccuracyRating: 5}, // 5.0
			{ExpertId: "e2", BeverageId: "bev1", PresentationRating: 4, TasteRating: 3, IngredientsRating: 2, AccuracyRating: 1}, // 2.5
			{ExpertId: "e3", BeverageId: "other", PresentationRating: 1, TasteRating: 1, IngredientsRating: 1, AccuracyRating: 1},
		}

		engine := NewEngine(fake, config.RecomputeSync, false)
		require.NoError(t, engine.RecomputeExpert(ctx, "bev1"))

		aggregate := fake.Aggregates["bev1"]
		require.Equal(t, 7.5, aggregate.SumRatingsExpert)
		require.Equal(t, 2, aggregate.CountExpert)
		require.Zero(t, aggregate.CountHuman)
	})
}

func TestRecomputeBadges(t *testing.T) {
	ctx := context.Background()

	t.Run("Badges are rewritten from fresh counts", func(t *testing.T) {
		fake := storetest.New()
		fake.FriendEdges[[2]string{"u1", "u2"}] = store.FriendEdgeDb{UserId: "u1", FriendId: "u2"}
		fake.FriendEdges[[2]string{"u1", "u3"}] = store.FriendEdgeDb{UserId: "u1", FriendId: "u3"}
		fake.Bookmarks[[2]string{"u1", "r1"}] = store.BookmarkDb{UserId: "u1", RestaurantId: "r1"}

		engine := NewEngine(fake, config.RecomputeSync, false)
		require.NoError(t, engine.RecomputeFriendsBadge(ctx, "u1"))
		require.NoError(t, engine.RecomputeBookmarkBadge(ctx, "u1"))

		badge := fake.Badges["u1"]
		require.Equal(t, int64(2), badge.FriendsCount)
		require.Equal(t, int64(1), badge.BookmarkCount)
	})
}

func TestDetachedMode(t *testing.T) {
	ctx := context.Background()

	t.Run("Detached recompute completes after the caller returns", func(t *testing.T) {
		fake := storetest.New()
		seedUserRating(fake, "u1", "bev1", 5)

		engine := NewEngine(fake, config.RecomputeDetached, false)
		require.NoError(t, engine.RecomputeBeverage(ctx, "bev1"))

		engine.Wait()
		require.Equal(t, 5, fake.Aggregates["bev1"].SumRatingsHuman)
	})

	t.Run("Detached recompute swallows store failures", func(t *testing.T) {
		fake := storetest.New()
		fake.UpsertHumanErr = errors.New("store unavailable")

		engine := NewEngine(fake, config.RecomputeDetached, false)
		require.NoError(t, engine.RecomputeBeverage(ctx, "bev1"))
		engine.Wait()
	})

	t.Run("Detached recompute survives caller cancellation", func(t *testing.T) {
		fake := storetest.New()
		seedUserRating(fake, "u1", "bev1", 3)

		cancelled, cancel := context.WithCancel(ctx)
		engine := NewEngine(fake, config.RecomputeDetached, false)
		require.NoError(t, engine.RecomputeBeverage(cancelled, "bev1"))
		cancel()

		engine.Wait()
		require.Equal(t, 1, fake.Aggregates["bev1"].CountHuman)
	})
}

func TestSerializedRecompute(t *testing.T) {
	ctx := context.Background()

	t.Run("Concurrent recomputes for one beverage converge under serialization", func(t *testing.T) {
		fake := storetest.New()
		seedUserRating(fake, "u1", "bev1", 2)
		seedUserRating(fake, "u2", "bev1", 4)

		engine := NewEngine(fake, config.RecomputeSync, true)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				require.NoError(t, engine.RecomputeBeverage(ctx, "bev1"))
			}()
		}
		wg.Wait()

		aggregate := fake.Aggregates["bev1"]
		require.Equal(t, 6, aggregate.SumRatingsHuman)
		require.Equal(t, 2, aggregate.CountHuman)
	})
}
