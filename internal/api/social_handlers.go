package api

import (
	"net/http"

	"github.com/sipzy/sipzy-backend/internal/auth"
	"github.com/sipzy/sipzy-backend/internal/logx"
	"github.com/sipzy/sipzy-backend/internal/services/social"
)

func (api *API) AddFriend(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	userId := auth.UserIdFromContext(r.Context())

	friendId := r.PathValue("friendId")
	if friendId == "" {
		respondWithError(w, http.StatusBadRequest, "Friend id is required")
		return
	}

	result, err := api.Social.AddFriend(r.Context(), userId, friendId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(social.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while adding friend")
		return
	}

	respondWithData(w, http.StatusOK, result)
}

func (api *API) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	userId := auth.UserIdFromContext(r.Context())

	friendId := r.PathValue("friendId")
	if friendId == "" {
		respondWithError(w, http.StatusBadRequest, "Friend id is required")
		return
	}

	result, err := api.Social.RemoveFriend(r.Context(), userId, friendId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(social.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while removing friend")
		return
	}

	respondWithData(w, http.StatusOK, result)
}

func (api *API) GetMyFriends(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	userId := auth.UserIdFromContext(r.Context())

	profiles, err := api.Social.ListFriends(r.Context(), userId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(social.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Database error while listing friends")
		return
	}

	respondWithData(w, http.StatusOK, profiles)
}
