package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sipzy/sipzy-backend/internal/services/bookmarks"
	"github.com/sipzy/sipzy-backend/internal/store"
)

func TestBookmarks(t *testing.T) {
	resetDB(t)

	seed(t, store.RestaurantsCollection,
		store.RestaurantDb{Id: "r1", Name: "Bar Basso", Area: "Milano"},
		store.RestaurantDb{Id: "r2", Name: "Dante", Area: "NYC"},
	)

	t.Run("Bookmarking anonymously should return 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/bookmarks/r1", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Bookmarking an unknown restaurant should return 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/bookmarks/missing", "u1", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeError(t, resp)
		require.Equal(t, "Restaurant not found", body.Message)
	})

	t.Run("Bookmarks accumulate and the badge tracks the count", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/bookmarks/r1", "u1", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decodeSuccess[bookmarks.Result](t, resp)
		require.Equal(t, "Bookmark added", result.Message)

		resp = doRequest(t, http.MethodPost, "/bookmarks/r2", "u1", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Re-adding the same restaurant changes nothing.
		resp = doRequest(t, http.MethodPost, "/bookmarks/r1", "u1", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.Equal(t, int64(2), getBadge(t, "u1").BookmarkCount)
	})

	t.Run("Listing bookmarks resolves restaurants", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/bookmarks", "u1", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		restaurants := decodeSuccess[[]store.RestaurantDb](t, resp)
		require.Len(t, restaurants, 2)
	})

	t.Run("Removing a bookmark recounts the badge", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, "/bookmarks/r1", "u1", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decodeSuccess[bookmarks.Result](t, resp)
		require.Equal(t, "Bookmark removed", result.Message)

		require.Equal(t, int64(1), getBadge(t, "u1").BookmarkCount)
	})

	t.Run("Another user's bookmarks stay separate", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/bookmarks", "u2", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		restaurants := decodeSuccess[[]store.RestaurantDb](t, resp)
		require.Empty(t, restaurants)
	})
}
