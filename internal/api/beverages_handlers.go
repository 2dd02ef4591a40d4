package api

import (
	"encoding/json"
	"net/http"

	"github.com/sipzy/sipzy-backend/internal/auth"
	"github.com/sipzy/sipzy-backend/internal/logx"
	"github.com/sipzy/sipzy-backend/internal/services/beverages"
)

func (api *API) GetBeverage(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	beverageId := r.PathValue("beverageId")
	if beverageId == "" {
		respondWithError(w, http.StatusBadRequest, "Beverage id is required")
		return
	}

	details, err := api.Beverages.GetDetails(r.Context(), beverageId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(beverages.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Database error while getting beverage")
		return
	}

	respondWithData(w, http.StatusOK, details)
}

func (api *API) GetBeverageRatings(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	beverageId := r.PathValue("beverageId")
	if beverageId == "" {
		respondWithError(w, http.StatusBadRequest, "Beverage id is required")
		return
	}

	ratings, err := api.Beverages.GetRatings(r.Context(), beverageId)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Database error while getting ratings")
		return
	}

	respondWithData(w, http.StatusOK, ratings)
}

func (api *API) SubmitRating(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	userId := auth.UserIdFromContext(r.Context())

	beverageId := r.PathValue("beverageId")
	if beverageId == "" {
		respondWithError(w, http.StatusBadRequest, "Beverage id is required")
		return
	}

	var req beverages.NewRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	result, err := api.Beverages.SubmitRating(r.Context(), userId, beverageId, req)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(beverages.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while saving rating")
		return
	}

	respondWithData(w, http.StatusOK, result)
}
