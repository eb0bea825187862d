package api

import (
	"errors"
	"fmt"
)

// RequestFailed is reported when the server returns something unusable.
const RequestFailed = "Request failed. Please contact us if this error persists."

// Error is a failure reported by the API, either as success=false or as a
// malformed response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// MessageOf returns the user-facing message carried by err, or fallback when
// err is not an *Error or has no message.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
