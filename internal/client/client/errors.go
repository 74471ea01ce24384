package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNotSupported      = errors.New("operation not supported")
)

// StatusError is a non-2xx response without a more specific mapping.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed (status %d)", e.Code)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.Code, e.Message)
}
