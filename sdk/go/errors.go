package gpublishing

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched by APIError.
var (
	// ErrRejected is returned when required fields are missing.
	ErrRejected = errors.New("gpublishing: submission rejected")

	// ErrNotDelivered is returned when the site could not deliver the operator notification.
	ErrNotDelivered = errors.New("gpublishing: submission not delivered")
)

// APIError represents an error response from the site.
// Message is the plain-text body, suitable for showing to the submitter.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gpublishing: API error %d: %s", e.StatusCode, e.Message)
}

// Is maps the response status onto the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRejected:
		return e.StatusCode == http.StatusBadRequest
	case ErrNotDelivered:
		return e.StatusCode == http.StatusInternalServerError
	}
	return false
}

// IsAPIError checks whether err is an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
