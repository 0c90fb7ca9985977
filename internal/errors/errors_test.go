package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("text is required")

	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
	assert.Contains(t, err.Error(), "text is required")
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("idea", "i-42")

	assert.Equal(t, CategoryNotFound, err.Category)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Contains(t, err.Error(), "idea not found")
}

func TestIsNotFound(t *testing.T) {
	notFound := NewNotFoundError("idea", "i-42")

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(fmt.Errorf("query failed: %w", notFound)))
	assert.False(t, IsNotFound(NewValidationError("bad input")))
	assert.False(t, IsNotFound(stderrors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		category       ErrorCategory
		expectedStatus int
	}{
		{"passes through app errors", NewNotFoundError("idea", "x"), CategoryNotFound, http.StatusNotFound},
		{"context cancelled", context.Canceled, CategoryTimeout, http.StatusGatewayTimeout},
		{"deadline exceeded", context.DeadlineExceeded, CategoryTimeout, http.StatusGatewayTimeout},
		{"timeout by message", stderrors.New("dial tcp: i/o timeout"), CategoryTimeout, http.StatusGatewayTimeout},
		{"anything else is internal", stderrors.New("boom"), CategoryInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.category, appErr.Category)
			assert.Equal(t, tt.expectedStatus, appErr.HTTPStatus)
		})
	}
}

func TestToAppErrorNil(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
}

func TestWrapError(t *testing.T) {
	base := stderrors.New("base")

	wrapped := WrapError(base, "loading idea %s", "i-1")
	require.Error(t, wrapped)
	assert.Equal(t, "loading idea i-1: base", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))

	assert.Nil(t, WrapError(nil, "ignored"))
}
