package api

import (
	"errors"
	"net/http"

	"github.com/wordtrail/wordtrail-api/internal/service/learning"
)

// MapErrorToStatusCode maps service-level errors to HTTP status codes.
// Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, learning.ErrNoWordsAvailable):
		return http.StatusNoContent
	case errors.Is(err, learning.ErrWordNotFound),
		errors.Is(err, learning.ErrProgressNotFound):
		return http.StatusNotFound
	case errors.Is(err, learning.ErrPersistenceFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the error. Raw error
// strings never reach the response body.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, learning.ErrNoWordsAvailable):
		return "No words available"
	case errors.Is(err, learning.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, learning.ErrProgressNotFound):
		return "No progress recorded for this word"
	case errors.Is(err, learning.ErrPersistenceFailure):
		return "Failed to save progress, please try again"
	default:
		return "Internal server error"
	}
}
