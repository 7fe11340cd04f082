package repositories

import (
	"context"
	"fmt"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// MembershipRepository stores (user, recipe) pairs such as favorites and cart entries
type MembershipRepository interface {
	Add(ctx context.Context, userID, recipeID uint) error
	Remove(ctx context.Context, userID, recipeID uint) error
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	RecipeIDsAmong(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error)
}

// ShoppingCartRepository is the cart membership plus the read used for aggregation
type ShoppingCartRepository interface {
	MembershipRepository
	ListIngredientLines(ctx context.Context, userID uint) ([]models.IngredientLine, error)
}

type membershipRepository struct {
	db     *gorm.DB
	model  any
	newRow func(userID, recipeID uint) any
	list   string
}

func NewPostgresFavoriteRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{
		db:    db,
		model: &models.Favorite{},
		newRow: func(userID, recipeID uint) any {
			return &models.Favorite{UserID: userID, RecipeID: recipeID}
		},
		list: "favorites",
	}
}

func NewPostgresShoppingCartRepository(db *gorm.DB) ShoppingCartRepository {
	return &shoppingCartRepository{membershipRepository{
		db:    db,
		model: &models.ShoppingCartEntry{},
		newRow: func(userID, recipeID uint) any {
			return &models.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}
		},
		list: "shopping cart",
	}}
}

// Add inserts the pair. A concurrent duplicate loses on the unique index and a
// user or recipe missing at commit time fails the foreign keys.
func (r *membershipRepository) Add(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).Create(r.newRow(userID, recipeID)).Error
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return apperrors.DuplicateRelation(fmt.Sprintf("recipe already in %s", r.list))
	case isForeignKeyViolation(err):
		return apperrors.NotFound("user or recipe not found")
	default:
		return translateError(err)
	}
}

func (r *membershipRepository) Remove(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(r.model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("recipe is not in %s", r.list))
	}
	return nil
}

func (r *membershipRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(r.model).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

// RecipeIDsAmong reports which of recipeIDs the user holds, in one query
func (r *membershipRepository) RecipeIDsAmong(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(recipeIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(r.model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

type shoppingCartRepository struct {
	membershipRepository
}

// ListIngredientLines returns every ingredient row of every recipe in the user's cart
func (r *shoppingCartRepository) ListIngredientLines(ctx context.Context, userID uint) ([]models.IngredientLine, error) {
	var lines []models.IngredientLine
	err := r.db.WithContext(ctx).
		Table("shopping_cart_entries AS c").
		Select("ri.recipe_id AS recipe_id, i.name AS ingredient_name, i.measurement_unit AS measurement_unit, ri.amount AS amount").
		Joins("JOIN recipe_ingredients AS ri ON ri.recipe_id = c.recipe_id").
		Joins("JOIN ingredients AS i ON i.id = ri.ingredient_id").
		Where("c.user_id = ?", userID).
		Order("ri.id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("list shopping cart lines: %w", err)
	}
	return lines, nil
}
