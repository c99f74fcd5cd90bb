package movies

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid recommendation API configuration")
	// ErrNoResults indicates the random endpoint found nothing for the filters
	ErrNoResults = errors.New("no movie matched the selected filters")
	// ErrInvalidMovieID indicates a non-positive movie id
	ErrInvalidMovieID = errors.New("invalid movie id")
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// APIError represents a non-success answer from the recommendation API
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("recommendation API error: status %d: %s", e.StatusCode, e.Status)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsBadRequest checks if the API rejected the query parameters
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsServerError checks if the API or its upstream failed
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

func newAPIError(resp *http.Response, endpoint string, body []byte) *APIError {
	status := http.StatusText(resp.StatusCode)
	if status == "" {
		status = resp.Status
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     status,
		Endpoint:   endpoint,
		Body:       string(body),
	}
}
