package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation error", NewValidationError().Error())
	assert.Equal(t, "validation error: name is required; price must be >= 0",
		NewValidationError("name is required", "price must be >= 0").Error())
}

func TestAsValidationError(t *testing.T) {
	wrapped := fmt.Errorf("save product: %w", NewValidationError("stock must be an integer"))

	ve, ok := AsValidationError(wrapped)
	require.True(t, ok)
	assert.Equal(t, []string{"stock must be an integer"}, ve.Messages)

	_, ok = AsValidationError(errors.New("plain"))
	assert.False(t, ok)
}
