package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrCircuitOpen    = errors.New("circuit breaker is open")
	ErrInvalidPayload = errors.New("invalid menu payload")
	ErrUnsuccessful   = errors.New("menu API reported failure")
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Status)
}

// IsClientError reports whether err carries a 4xx status; those are never retried
func IsClientError(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusBadRequest && statusErr.StatusCode < http.StatusInternalServerError
	}
	return false
}
