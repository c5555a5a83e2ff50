package riot

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("riot: not found")
	ErrUnauthorized = errors.New("riot: unauthorized")
	ErrForbidden    = errors.New("riot: forbidden - check if your API key is valid")
	ErrRateLimited  = errors.New("riot: rate limited")
)

// APIError is returned for any non-200 response from the Riot API
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API returned status %d for %s: %s", e.StatusCode, e.Path, e.Body)
	}
	return fmt.Sprintf("API returned status %d for %s", e.StatusCode, e.Path)
}

// Unwrap maps well-known status codes onto the package sentinels so callers
// can use errors.Is(err, riot.ErrNotFound).
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// StatusCode extracts the upstream HTTP status from err, or 0 when err did not
// come from an API response.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
