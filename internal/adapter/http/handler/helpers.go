package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/dto"
	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNameTooLong):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrZeroAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrShapeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflictExhausted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStateUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
