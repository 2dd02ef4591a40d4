package api

import (
	"net/http"

	"github.com/sipzy/sipzy-backend/internal/auth"
	"github.com/sipzy/sipzy-backend/internal/logx"
	"github.com/sipzy/sipzy-backend/internal/services/bookmarks"
)

func (api *API) AddBookmark(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	userId := auth.UserIdFromContext(r.Context())

	restaurantId := r.PathValue("restaurantId")
	if restaurantId == "" {
		respondWithError(w, http.StatusBadRequest, "Restaurant id is required")
		return
	}

	result, err := api.Bookmarks.Add(r.Context(), userId, restaurantId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(bookmarks.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while adding bookmark")
		return
	}

	respondWithData(w, http.StatusOK, result)
}

func (api *API) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	userId := auth.UserIdFromContext(r.Context())

	restaurantId := r.PathValue("restaurantId")
	if restaurantId == "" {
		respondWithError(w, http.StatusBadRequest, "Restaurant id is required")
		return
	}

	result, err := api.Bookmarks.Remove(r.Context(), userId, restaurantId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(bookmarks.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while removing bookmark")
		return
	}

	respondWithData(w, http.StatusOK, result)
}

func (api *API) GetMyBookmarks(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	userId := auth.UserIdFromContext(r.Context())

	restaurants, err := api.Bookmarks.List(r.Context(), userId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(bookmarks.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Database error while listing bookmarks")
		return
	}

	respondWithData(w, http.StatusOK, restaurants)
}
