package common

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "items are required", NewValidationError("items are required").Error())

	err := NewValidationError("", FieldError{Field: "email", Error: "invalid"}, FieldError{Field: "name", Error: "required"})
	assert.Equal(t, "email: invalid; name: required", err.Error())
}

func TestIsValidationError(t *testing.T) {
	wrapped := fmt.Errorf("create order: %w", NewValidationError("bad"))
	assert.True(t, IsValidationError(wrapped))
	assert.False(t, IsValidationError(ErrNotFound))
}
