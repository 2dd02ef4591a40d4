package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sipzy/sipzy-backend/internal/services/beverages"
	"github.com/sipzy/sipzy-backend/internal/store"
)

func getBeverageAggregate(t *testing.T, beverageId string) store.BeverageRatingDb {
	t.Helper()

	var aggregate store.BeverageRatingDb
	err := testDB.Collection(store.BeverageRatingsCollection).
		FindOne(context.Background(), bson.M{"beverageId": beverageId}).
		Decode(&aggregate)
	require.NoError(t, err)
	return aggregate
}

func TestRateBeverage(t *testing.T) {
	resetDB(t)

	seed(t, store.BeveragesCollection, store.BeverageDb{
		Id:       "bev1",
		Name:     "House Negroni",
		Category: "cocktail",
	})

	t.Run("Rating a beverage anonymously should return 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/beverages/bev1/ratings", "", beverages.NewRatingRequest{Rating: 4})
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeError(t, resp)
		require.False(t, body.Success)
		require.Equal(t, "Missing caller identity", body.Message)
	})

	t.Run("Rating with a value outside 1-5 should return 400", func(t *testing.T) {
		for _, rating := range []int{0, 6} {
			resp := doRequest(t, http.MethodPost, "/beverages/bev1/ratings", "u1", beverages.NewRatingRequest{Rating: rating})
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		}
	})

	t.Run("Rating an unknown beverage should return 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/beverages/missing/ratings", "u1", beverages.NewRatingRequest{Rating: 4})
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeError(t, resp)
		require.Equal(t, "Beverage not found", body.Message)
	})

	t.Run("Submits and resubmits keep the aggregate exact", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/beverages/bev1/ratings", "u1", beverages.NewRatingRequest{Rating: 5})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decodeSuccess[beverages.RatingResult](t, resp)
		require.Equal(t, "Rating saved", result.Message)

		aggregate := getBeverageAggregate(t, "bev1")
		require.Equal(t, 5, aggregate.SumRatingsHuman)
		require.Equal(t, 1, aggregate.CountHuman)

		resp = doRequest(t, http.MethodPost, "/beverages/bev1/ratings", "u2", beverages.NewRatingRequest{Rating: 3})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		aggregate = getBeverageAggregate(t, "bev1")
		require.Equal(t, 8, aggregate.SumRatingsHuman)
		require.Equal(t, 2, aggregate.CountHuman)

		// Resubmit replaces the first user's rating.
		resp = doRequest(t, http.MethodPost, "/beverages/bev1/ratings", "u1", beverages.NewRatingRequest{Rating: 1})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		aggregate = getBeverageAggregate(t, "bev1")
		require.Equal(t, 4, aggregate.SumRatingsHuman)
		require.Equal(t, 2, aggregate.CountHuman)
	})

	t.Run("The ratings endpoint serves the derived averages", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/beverages/bev1/ratings", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		ratings := decodeSuccess[beverages.AggregatedRatings](t, resp)
		require.Equal(t, 2.0, ratings.AvgHuman)
		require.Equal(t, 2, ratings.CountHuman)
		require.Zero(t, ratings.CountExpert)
	})

	t.Run("An unrated beverage reads as zeros", func(t *testing.T) {
		seed(t, store.BeveragesCollection, store.BeverageDb{Id: "bev2", Name: "Basil Smash"})

		resp := doRequest(t, http.MethodGet, "/beverages/bev2/ratings", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		ratings := decodeSuccess[beverages.AggregatedRatings](t, resp)
		require.Equal(t, beverages.AggregatedRatings{}, ratings)
	})
}

func TestGetBeverageDetails(t *testing.T) {
	resetDB(t)

	seed(t, store.BeveragesCollection, store.BeverageDb{
		Id:       "bev1",
		Name:     "House Negroni",
		Category: "cocktail",
	})

	t.Run("Unknown beverage should return 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/beverages/missing", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Details embed the aggregated ratings", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/beverages/bev1/ratings", "u1", beverages.NewRatingRequest{Rating: 4})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doRequest(t, http.MethodGet, "/beverages/bev1", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		details := decodeSuccess[beverages.BeverageDetails](t, resp)
		require.Equal(t, "House Negroni", details.Name)
		require.Equal(t, 4.0, details.Ratings.AvgHuman)
		require.Equal(t, 1, details.Ratings.CountHuman)
	})
}

func TestHealth(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, decodeBody(resp, &body))
	require.Equal(t, "SipZy backend running", body["status"])
	require.NotEmpty(t, body["timestamp"])
}
