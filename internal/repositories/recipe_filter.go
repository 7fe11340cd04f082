package repositories

import (
	"github.com/anonto42/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// RecipeFilter selects recipes for a listing. Set fields are ANDed; tag slugs
// match any. The favorited and cart predicates need a viewer and are ignored
// without one.
type RecipeFilter struct {
	AuthorID         uint
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	ViewerID         uint
}

// Scopes returns the gorm scopes for the populated fields of f
func (f RecipeFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	if f.AuthorID != 0 {
		scopes = append(scopes, ByAuthor(f.AuthorID))
	}
	if len(f.TagSlugs) > 0 {
		scopes = append(scopes, WithAnyTag(f.TagSlugs))
	}
	if f.IsFavorited && f.ViewerID != 0 {
		scopes = append(scopes, FavoritedBy(f.ViewerID))
	}
	if f.IsInShoppingCart && f.ViewerID != 0 {
		scopes = append(scopes, InCartOf(f.ViewerID))
	}
	return scopes
}

func ByAuthor(authorID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.author_id = ?", authorID)
	}
}

// WithAnyTag keeps recipes carrying at least one of the given tag slugs
func WithAnyTag(slugs []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", slugs)
		return db.Where("recipes.id IN (?)", sub)
	}
}

func FavoritedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", userID)
		return db.Where("recipes.id IN (?)", sub)
	}
}

func InCartOf(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.ShoppingCartEntry{}).
			Select("recipe_id").
			Where("user_id = ?", userID)
		return db.Where("recipes.id IN (?)", sub)
	}
}
