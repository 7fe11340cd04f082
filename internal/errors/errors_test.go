package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := DuplicateRelation("recipe already in favorites")

	assert.True(t, Is(err, ErrDuplicateRelation))
	assert.False(t, Is(err, ErrNotFound))
	assert.Equal(t, "recipe already in favorites", err.Error())
}

func TestError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("toggle favorite: %w", NotFound("recipe not found"))

	assert.True(t, Is(err, ErrNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestConstraintViolation_CarriesRule(t *testing.T) {
	cause := New("UNIQUE constraint failed: recipes.short_link")
	err := ConstraintViolation("recipes.short_link", cause)

	assert.True(t, Is(err, ErrConstraintViolation))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, map[string]string{"rule": "recipes.short_link"}, err.Details)
	assert.Contains(t, err.Error(), "recipes.short_link")
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeDuplicateRelation, http.StatusBadRequest},
		{CodeSelfFollow, http.StatusBadRequest},
		{CodeConstraintViolation, http.StatusConflict},
		{CodePermission, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(New("boom")))
}
