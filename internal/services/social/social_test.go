package social

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sipzy/sipzy-backend/internal/aggregate"
	"github.com/sipzy/sipzy-backend/internal/config"
	"github.com/sipzy/sipzy-backend/internal/store"
	"github.com/sipzy/sipzy-backend/internal/store/storetest"
)

func newTestService(fake *storetest.Store) *Service {
	engine := aggregate.NewEngine(fake, config.RecomputeSync, false)
	return NewService(fake, engine)
}

func TestAddFriend(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects a caller without identity", func(t *testing.T) {
		fake := storetest.New()
		service := newTestService(fake)

		_, err := service.AddFriend(ctx, "", "u2")
		require.ErrorIs(t, err, ErrMissingUser)
	})

	t.Run("Rejects self-friendship before any write", func(t *testing.T) {
		fake := storetest.New()
		service := newTestService(fake)

		_, err := service.AddFriend(ctx, "u1", "u1")
		require.ErrorIs(t, err, ErrSelfFriend)
		require.Empty(t, fake.FriendEdges)
		require.Empty(t, fake.Badges)
	})

	t.Run("Writes both directed edges and both badges", func(t *testing.T) {
		fake := storetest.New()
		service := newTestService(fake)

		result, err := service.AddFriend(ctx, "u1", "u2")
		require.NoError(t, err)
		require.Equal(t, "Friend added", result.Message)

		require.Contains(t, fake.FriendEdges, [2]string{"u1", "u2"})
		require.Contains(t, fake.FriendEdges, [2]string{"u2", "u1"})
		require.Equal(t, int64(1), fake.Badges["u1"].FriendsCount)
		require.Equal(t, int64(1), fake.Badges["u2"].FriendsCount)
	})

	t.Run("Adding twice is idempotent", func(t *testing.T) {
		fake := storetest.New()
		service := newTestService(fake)

		_, err := service.AddFriend(ctx, "u1", "u2")
		require.NoError(t, err)
		_, err = service.AddFriend(ctx, "u1", "u2")
		require.NoError(t, err)

		require.Len(t, fake.FriendEdges, 2)
		require.Equal(t, int64(1), fake.Badges["u1"].FriendsCount)
	})

	t.Run("One side failing still attempts the other", func(t *testing.T) {
		fake := storetest.New()
		fake.EdgeInsertErr = map[[2]string]error{
			{"u2", "u1"}: errors.New("store unavailable"),
		}
		service := newTestService(fake)

		_, err := service.AddFriend(ctx, "u1", "u2")
		require.Error(t, err)

		// The surviving direction landed; the pair is half-applied.
		require.Contains(t, fake.FriendEdges, [2]string{"u1", "u2"})
		require.NotContains(t, fake.FriendEdges, [2]string{"u2", "u1"})
	})
}

func TestRemoveFriend(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes both directions and recounts both badges", func(t *testing.T) {
		fake := storetest.New()
		service := newTestService(fake)

		_, err := service.AddFriend(ctx, "u1", "u2")
		require.NoError(t, err)

		result, err := service.RemoveFriend(ctx, "u1", "u2")
		require.NoError(t, err)
		require.Equal(t, "Friend removed", result.Message)

		require.Empty(t, fake.FriendEdges)
		require.Equal(t, int64(0), fake.Badges["u1"].FriendsCount)
		require.Equal(t, int64(0), fake.Badges["u2"].FriendsCount)
	})

	t.Run("Removing a non-friend is a no-op", func(t *testing.T) {
		fake := storetest.New()
		service := newTestService(fake)

		_, err := service.RemoveFriend(ctx, "u1", "u2")
		require.NoError(t, err)
	})
}

func TestListFriends(t *testing.T) {
	ctx := context.Background()

	t.Run("No friends yields an empty slice, not nil", func(t *testing.T) {
		fake := storetest.New()
		service := newTestService(fake)

		friends, err := service.ListFriends(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, friends)
		require.Empty(t, friends)
	})

	t.Run("Resolves edges to profiles", func(t *testing.T) {
		fake := storetest.New()
		fake.Profiles["u2"] = store.ProfileDb{Id: "u2", Name: "Dana"}
		service := newTestService(fake)

		_, err := service.AddFriend(ctx, "u1", "u2")
		require.NoError(t, err)

		friends, err := service.ListFriends(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, friends, 1)
		require.Equal(t, "Dana", friends[0].Name)
	})
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("Nothing to repair on a converged store", func(t *testing.T) {
		fake := storetest.New()
		service := newTestService(fake)

		_, err := service.AddFriend(ctx, "u1", "u2")
		require.NoError(t, err)

		report, err := service.Reconcile(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, report.EdgesScanned)
		require.Zero(t, report.EdgesRepaired)
		require.Empty(t, report.UsersRecounted)
	})

	t.Run("Repairs a half-applied pair by inserting the missing mirror", func(t *testing.T) {
		fake := storetest.New()
		fake.EdgeInsertErr = map[[2]string]error{
			{"u2", "u1"}: errors.New("store unavailable"),
		}
		service := newTestService(fake)

		_, err := service.AddFriend(ctx, "u1", "u2")
		require.Error(t, err)

		// The store recovers; the next pass converges the pair.
		fake.EdgeInsertErr = nil

		report, err := service.Reconcile(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, report.EdgesScanned)
		require.Equal(t, 1, report.EdgesRepaired)
		require.Equal(t, []string{"u1", "u2"}, report.UsersRecounted)

		require.Contains(t, fake.FriendEdges, [2]string{"u2", "u1"})
		require.Equal(t, int64(1), fake.Badges["u1"].FriendsCount)
		require.Equal(t, int64(1), fake.Badges["u2"].FriendsCount)
	})
}
