package repositories

import (
	"errors"
	"testing"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	rules := []constraintRule{
		{name: "unique_recipe_author_name", markers: []string{"idx_recipe_author_name", "recipes.author_id, recipes.name"}},
		{name: "chk_recipe_cooking_time", markers: []string{"chk_recipe_cooking_time"}},
	}

	tests := []struct {
		name     string
		err      error
		wantRule string
	}{
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: recipes.author_id, recipes.name (2067)"), "unique_recipe_author_name"},
		{"postgres unique", errors.New(`ERROR: duplicate key value violates unique constraint "idx_recipe_author_name" (SQLSTATE 23505)`), "unique_recipe_author_name"},
		{"sqlite check", errors.New("constraint failed: CHECK constraint failed: chk_recipe_cooking_time (275)"), "chk_recipe_cooking_time"},
		{"postgres check", errors.New(`ERROR: new row for relation "recipes" violates check constraint "chk_recipe_cooking_time" (SQLSTATE 23514)`), "chk_recipe_cooking_time"},
		{"unknown unique", errors.New("UNIQUE constraint failed: tags.slug"), "unique"},
		{"translated duplicate", gorm.ErrDuplicatedKey, "unique"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(tt.err, rules...)

			var appErr *apperrors.Error
			if assert.True(t, apperrors.As(err, &appErr)) {
				assert.Equal(t, apperrors.CodeConstraintViolation, appErr.Code)
				assert.Equal(t, map[string]string{"rule": tt.wantRule}, appErr.Details)
			}
		})
	}
}

func TestTranslateError_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("connection refused")

	assert.Same(t, plain, translateError(plain))
	assert.NoError(t, translateError(nil))
}
