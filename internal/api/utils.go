package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Envelope expected by every SipZy client: 2xx responses wrap the payload in
// {success:true, data}, everything else is {success:false, message}.

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) error {
	response, err := json.Marshal(&payload)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)

	return nil
}

func respondWithData(w http.ResponseWriter, code int, data any) error {
	return respondWithJSON(w, code, SuccessResponse{Success: true, Data: data})
}

func respondWithError(w http.ResponseWriter, code int, msg string) error {
	return respondWithJSON(w, code, ErrorResponse{Success: false, Message: msg})
}

func RespondWithUnauthorized(w http.ResponseWriter) error {
	return respondWithError(w, http.StatusUnauthorized, "Missing caller identity")
}

func formatErrorMessage(err error) string {
	errorMsg := err.Error()
	if len(errorMsg) > 0 {
		return strings.ToUpper(errorMsg[:1]) + errorMsg[1:]
	}
	return ""
}

// getErrorStatusCode checks if an error matches the service's ErrorMap by
// iterating with errors.Is, so wrapped and non-hashable errors are handled.
func getErrorStatusCode(errMap map[error]int, err error) (int, bool) {
	for predefinedErr, statusCode := range errMap {
		if errors.Is(err, predefinedErr) {
			return statusCode, true
		}
	}
	return 0, false
}
