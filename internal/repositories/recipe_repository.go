package repositories

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/shortlink"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ruleRecipeShortLink = constraintRule{name: "unique_recipe_short_link", markers: []string{"idx_recipes_short_link", "recipes.short_link"}}

	recipeRules = []constraintRule{
		{name: "unique_recipe_author_name", markers: []string{"idx_recipe_author_name", "recipes.author_id, recipes.name"}},
		ruleRecipeShortLink,
		{name: "chk_recipe_cooking_time", markers: []string{"chk_recipe_cooking_time"}},
		{name: "unique_recipe_ingredient", markers: []string{"idx_recipe_ingredient", "recipe_ingredients.recipe_id, recipe_ingredients.ingredient_id"}},
		{name: "chk_recipe_ingredient_amount", markers: []string{"chk_recipe_ingredient_amount"}},
		{name: "unique_recipe_tag", markers: []string{"recipe_tags_pkey", "recipe_tags.recipe_id, recipe_tags.tag_id"}},
	}
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe, tagIDs []uint, ingredients []models.RecipeIngredient) error
	UpdateRecipe(ctx context.Context, recipe *models.Recipe, tagIDs []uint, ingredients []models.RecipeIngredient) error
	EnsureShortLink(ctx context.Context, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id uint) error
	FindRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	GetRecipeByID(ctx context.Context, id uint) (*models.Recipe, error)
	GetRecipeIDByShortLink(ctx context.Context, token string) (uint, error)
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	ListRecipesByAuthors(ctx context.Context, authorIDs []uint) ([]models.Recipe, error)
	ShortLinkExists(ctx context.Context, token string) (bool, error)
}

// RecipeRepositoryOption configures a PostgresRecipeRepository
type RecipeRepositoryOption func(*PostgresRecipeRepository)

// WithShortLinkSource replaces the random short-link token source
func WithShortLinkSource(src shortlink.Source) RecipeRepositoryOption {
	return func(r *PostgresRecipeRepository) {
		r.linkSource = src
	}
}

// PostgresRecipeRepository implements RecipeRepository on top of gorm
type PostgresRecipeRepository struct {
	db         *gorm.DB
	linkSource shortlink.Source
}

func NewPostgresRecipeRepository(db *gorm.DB, opts ...RecipeRepositoryOption) *PostgresRecipeRepository {
	r := &PostgresRecipeRepository{db: db, linkSource: shortlink.Random}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// linkChecker answers short-link lookups on the given handle, usually a transaction
type linkChecker struct {
	db *gorm.DB
}

func (c linkChecker) ShortLinkExists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.Recipe{}).Where("short_link = ?", token).Count(&count).Error
	return count > 0, err
}

func (r *PostgresRecipeRepository) ShortLinkExists(ctx context.Context, token string) (bool, error) {
	return linkChecker{db: r.db}.ShortLinkExists(ctx, token)
}

// CreateRecipe inserts the recipe with its tag links and ingredient rows in one
// transaction, assigning a short link when the recipe has none.
func (r *PostgresRecipeRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe, tagIDs []uint, ingredients []models.RecipeIngredient) error {
	return r.saveWithShortLink(ctx, recipe, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertRelations(tx, recipe.ID, tagIDs, ingredients)
	}, func() {
		recipe.ID = 0
	})
}

// UpdateRecipe rewrites the recipe fields and replaces its tag links and
// ingredient rows in one transaction. An existing short link is kept.
func (r *PostgresRecipeRepository) UpdateRecipe(ctx context.Context, recipe *models.Recipe, tagIDs []uint, ingredients []models.RecipeIngredient) error {
	return r.saveWithShortLink(ctx, recipe, func(tx *gorm.DB) error {
		res := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]any{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
			"image":        recipe.Image,
			"short_link":   recipe.ShortLink,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("recipe not found")
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertRelations(tx, recipe.ID, tagIDs, ingredients)
	}, func() {})
}

// EnsureShortLink assigns a short link to a recipe stored without one. A link
// assigned concurrently by another writer wins and is loaded into recipe.
func (r *PostgresRecipeRepository) EnsureShortLink(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ShortLink != nil {
		return nil
	}
	return r.saveWithShortLink(ctx, recipe, func(tx *gorm.DB) error {
		res := tx.Model(&models.Recipe{}).Where("id = ? AND short_link IS NULL", recipe.ID).Update("short_link", recipe.ShortLink)
		if res.Error != nil || res.RowsAffected > 0 {
			return res.Error
		}
		var stored models.Recipe
		if err := tx.Select("id", "short_link").First(&stored, recipe.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("recipe not found")
			}
			return err
		}
		recipe.ShortLink = stored.ShortLink
		return nil
	}, func() {})
}

// saveWithShortLink runs write in a transaction. When the short link was
// generated here and the write loses a race on its unique index, the whole
// transaction is retried with a fresh token.
func (r *PostgresRecipeRepository) saveWithShortLink(ctx context.Context, recipe *models.Recipe, write func(tx *gorm.DB) error, reset func()) error {
	generated := recipe.ShortLink == nil
	for {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if recipe.ShortLink == nil {
				gen := shortlink.NewGenerator(linkChecker{db: tx}, shortlink.WithSource(r.linkSource))
				link, err := gen.Generate(ctx)
				if err != nil {
					return err
				}
				recipe.ShortLink = &link
			}
			return write(tx)
		})
		if err == nil {
			return nil
		}
		reset()
		if generated {
			recipe.ShortLink = nil
		}
		if generated && isUniqueViolation(err) && violates(err, ruleRecipeShortLink) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			continue
		}
		return translateError(err, recipeRules...)
	}
}

func insertRelations(tx *gorm.DB, recipeID uint, tagIDs []uint, ingredients []models.RecipeIngredient) error {
	if len(tagIDs) > 0 {
		links := make([]models.RecipeTag, len(tagIDs))
		for i, id := range tagIDs {
			links[i] = models.RecipeTag{RecipeID: recipeID, TagID: id}
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
	}
	if len(ingredients) > 0 {
		rows := make([]models.RecipeIngredient, len(ingredients))
		for i, ing := range ingredients {
			rows[i] = models.RecipeIngredient{RecipeID: recipeID, IngredientID: ing.IngredientID, Amount: ing.Amount}
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteRecipe removes the recipe together with its tag links, ingredient rows,
// favorites and cart entries.
func (r *PostgresRecipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []any{
			&models.RecipeTag{},
			&models.RecipeIngredient{},
			&models.Favorite{},
			&models.ShoppingCartEntry{},
		}
		for _, model := range dependents {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("delete recipe %d dependents: %w", id, err)
			}
		}
		res := tx.Delete(&models.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("recipe not found")
		}
		return nil
	})
}

// FindRecipe loads the recipe row without associations
func (r *PostgresRecipeRepository) FindRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("recipe not found")
		}
		return nil, err
	}
	return &recipe, nil
}

func withRecipeDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id") }).
		Preload("Ingredients.Ingredient")
}

// GetRecipeByID loads the recipe with author, tags and ingredients
func (r *PostgresRecipeRepository) GetRecipeByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).Scopes(withRecipeDetails).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("recipe not found")
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *PostgresRecipeRepository) GetRecipeIDByShortLink(ctx context.Context, token string) (uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("short_link = ?", token).Limit(1).Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, apperrors.NotFound("short link not found")
	}
	return ids[0], nil
}

// ListRecipes returns matching recipes, newest first, with details preloaded
func (r *PostgresRecipeRepository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Scopes(filter.Scopes()...).
		Scopes(withRecipeDetails).
		Order("recipes.id DESC").
		Find(&recipes).Error
	return recipes, err
}

// ListRecipesByAuthors returns the recipes of all given authors, newest first
func (r *PostgresRecipeRepository) ListRecipesByAuthors(ctx context.Context, authorIDs []uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if len(authorIDs) == 0 {
		return recipes, nil
	}
	err := r.db.WithContext(ctx).Where("author_id IN ?", authorIDs).Order("id DESC").Find(&recipes).Error
	return recipes, err
}
