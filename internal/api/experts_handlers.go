package api

import (
	"encoding/json"
	"net/http"

	"github.com/sipzy/sipzy-backend/internal/auth"
	"github.com/sipzy/sipzy-backend/internal/logx"
	"github.com/sipzy/sipzy-backend/internal/services/experts"
)

func (api *API) SubmitExpertRating(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	expertId := auth.UserIdFromContext(r.Context())

	beverageId := r.PathValue("beverageId")
	if beverageId == "" {
		respondWithError(w, http.StatusBadRequest, "Beverage id is required")
		return
	}

	var req experts.NewExpertRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	result, err := api.Experts.SubmitRating(r.Context(), expertId, beverageId, req)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(experts.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while saving expert rating")
		return
	}

	respondWithData(w, http.StatusOK, result)
}

func (api *API) GetExpertAverage(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	expertId := r.PathValue("expertId")
	if expertId == "" {
		respondWithError(w, http.StatusBadRequest, "Expert id is required")
		return
	}

	average, err := api.Experts.AverageForExpert(r.Context(), expertId)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Database error while getting expert ratings")
		return
	}

	respondWithData(w, http.StatusOK, average)
}
