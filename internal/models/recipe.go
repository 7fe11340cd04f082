package models

import "time"

// Recipe bounds.
const (
	MinCookingTime = 1
	MaxCookingTime = 300
	MinAmount      = 1
	MaxAmount      = 5000
	ShortLinkSize  = 6
)

// Recipe is owned by its Author and references tags and ingredients.
type Recipe struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	AuthorID    uint               `json:"author_id" gorm:"not null;index;uniqueIndex:idx_recipe_author_name"`
	Author      User               `json:"-" gorm:"foreignKey:AuthorID"`
	Name        string             `json:"name" gorm:"size:256;not null;uniqueIndex:idx_recipe_author_name"`
	Text        string             `json:"text" gorm:"type:text;not null"`
	CookingTime int                `json:"cooking_time" gorm:"not null;check:chk_recipe_cooking_time,cooking_time >= 1 AND cooking_time <= 300"`
	Image       *string            `json:"image"`
	ShortLink   *string            `json:"-" gorm:"size:6;uniqueIndex"`
	Tags        []Tag              `json:"-" gorm:"many2many:recipe_tags;"`
	Ingredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID"`
	CreatedAt   time.Time          `json:"-"`
}

// RecipeIngredient is the amount of one ingredient used by one recipe.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey"`
	RecipeID     uint       `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint       `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID"`
	Amount       int        `gorm:"not null;check:chk_recipe_ingredient_amount,amount >= 1 AND amount <= 5000"`
}

// RecipeSummary is the short form of a recipe returned by membership toggles
// and subscription previews.
type RecipeSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Image       *string `json:"image"`
	CookingTime int     `json:"cooking_time"`
}

// Summary returns the short form of r.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// RecipeIngredientView is an ingredient line as rendered in a recipe.
type RecipeIngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is a fully loaded recipe as seen by a particular viewer.
type RecipeView struct {
	ID               uint                   `json:"id"`
	Name             string                 `json:"name"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	Image            *string                `json:"image"`
	Author           UserProfile            `json:"author"`
	Tags             []Tag                  `json:"tags"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
}

// RecipeIngredientRequest is one ingredient line of a create/update request.
type RecipeIngredientRequest struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount" validate:"max=5000"`
}

// RecipeRequest defines the request body for creating or updating a recipe
type RecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=256"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=300"`
	Image       *string                   `json:"image" validate:"omitempty,max=2048"`
	Tags        []uint                    `json:"tags"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
}

// RecipeTag is the join row between a recipe and a tag.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey"`
	TagID    uint `gorm:"primaryKey;index"`
}

// TableName keeps the join table shared with the Recipe.Tags association.
func (RecipeTag) TableName() string {
	return "recipe_tags"
}
