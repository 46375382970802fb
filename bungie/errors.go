package bungie

import (
	"errors"
	"fmt"
)

// Common errors returned by the Bungie client.
var (
	// ErrNotConfigured indicates the client was constructed without a
	// required credential. This is an integration bug, not a runtime fault:
	// the API key, app id and app version must all be supplied at startup.
	ErrNotConfigured = errors.New("bungie client is not fully configured")

	// ErrSystemDisabled indicates the Destiny API is down for maintenance.
	// Bungie signals this through its error envelope, often with a 200
	// status, so it is checked before any HTTP status validation.
	ErrSystemDisabled = errors.New("destiny API is disabled for maintenance")
)

// APIError represents a non-success HTTP response from the Bungie API.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("bungie API error: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a missing player or character.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates a rejected API key.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
