package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"bad request", NewBadRequestError("bad"), http.StatusBadRequest},
		{"validation", NewValidationError("name is required"), http.StatusBadRequest},
		{"step out of range", NewStepOutOfRangeError(5, 3), http.StatusBadRequest},
		{"recipe not found", NewRecipeNotFoundError("42"), http.StatusNotFound},
		{"duplicate recipe", NewDuplicateRecipeError("1"), http.StatusConflict},
		{"generic not found", NewAppError(CodeNotFound, "Resource not found", ""), http.StatusNotFound},
		{"generic conflict", NewAppError(CodeConflict, "Conflict", ""), http.StatusConflict},
		{"rate limited", NewTooManyRequestsError(), http.StatusTooManyRequests},
		{"storage", NewStorageError("save favorites", fmt.Errorf("disk full")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "ignored"))
	})

	t.Run("AppError is returned unchanged", func(t *testing.T) {
		original := NewRecipeNotFoundError("7")
		wrapped := fmt.Errorf("lookup: %w", original)

		got := Wrap(wrapped, "ignored")

		assert.Same(t, original, got)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := stderrors.New("boom")

		got := Wrap(cause, "failed to search")

		require.NotNil(t, got)
		assert.Equal(t, CodeInternal, got.Code)
		assert.ErrorIs(t, got, cause)
	})
}

func TestIsAndGetCode(t *testing.T) {
	err := fmt.Errorf("context: %w", NewRecipeNotFoundError("3"))

	assert.True(t, Is(err, CodeRecipeNotFound))
	assert.False(t, Is(err, CodeConflict))
	assert.Equal(t, CodeRecipeNotFound, GetCode(err))
	assert.Equal(t, CodeInternal, GetCode(stderrors.New("plain")))
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "name", Tag: "required", Message: "name is required"},
		{Field: "servings", Tag: "gte", Message: "servings must be at least 1"},
	})

	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, "name is required; servings must be at least 1", err.Details)
	assert.Contains(t, err.Metadata, "validation_errors")
}

func TestToErrorResponse(t *testing.T) {
	resp := ToErrorResponse(NewRecipeNotFoundError("9"), "req-1")

	assert.Equal(t, CodeRecipeNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, "9", resp.Error.Metadata["recipe_id"])
	assert.NotEmpty(t, resp.Error.Timestamp)
}
