package handlers

import (
	"encoding/json"
	"net/http"

	"songboard/internal/apperrors"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps a service error to its HTTP status. Wrapped upstream
// detail stays out of the response body.
func WriteServiceError(w http.ResponseWriter, err error) {
	WriteError(w, apperrors.MessageOf(err), apperrors.StatusOf(err))
}
