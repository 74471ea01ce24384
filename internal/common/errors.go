package common

import (
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid token")

// ValidationError lists field problems, either found locally before a save
// or reported by the server with a 400 response.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation error"
	}
	return "validation error: " + strings.Join(e.Messages, "; ")
}

// AsValidationError unwraps err to a *ValidationError when it carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
