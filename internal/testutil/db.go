// Package testutil opens migrated in-memory databases and seeds fixtures for
// package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB returns a migrated private in-memory sqlite database with foreign keys on.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.Migrate(db))
	return db
}

// CreateUser inserts a user with a username-derived email.
func CreateUser(t testing.TB, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		LastName:  "Test",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateTag inserts a tag whose slug equals its name.
func CreateTag(t testing.TB, db *gorm.DB, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: name}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

// CreateIngredient inserts an ingredient.
func CreateIngredient(t testing.TB, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return ingredient
}

// IngredientAmount pairs an ingredient with its amount for CreateRecipe.
type IngredientAmount struct {
	Ingredient models.Ingredient
	Amount     int
}

// CreateRecipe inserts a recipe with its tags, ingredients and short link
// through the recipe repository.
func CreateRecipe(t testing.TB, db *gorm.DB, author models.User, name string, tags []models.Tag, items ...IngredientAmount) models.Recipe {
	t.Helper()
	recipe := models.Recipe{AuthorID: author.ID, Name: name, Text: name + " text", CookingTime: 10}
	tagIDs := make([]uint, len(tags))
	for i, tag := range tags {
		tagIDs[i] = tag.ID
	}
	rows := make([]models.RecipeIngredient, len(items))
	for i, item := range items {
		rows[i] = models.RecipeIngredient{IngredientID: item.Ingredient.ID, Amount: item.Amount}
	}
	repo := repositories.NewPostgresRecipeRepository(db)
	require.NoError(t, repo.CreateRecipe(t.Context(), &recipe, tagIDs, rows))
	return recipe
}
