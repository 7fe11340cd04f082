package repositories

import (
	"context"
	"errors"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// IngredientRepository defines the interface for ingredient data operations
type IngredientRepository interface {
	GetIngredientByID(ctx context.Context, id uint) (*models.Ingredient, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	ExistingIngredientIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type postgresIngredientRepository struct {
	db *gorm.DB
}

func NewPostgresIngredientRepository(db *gorm.DB) IngredientRepository {
	return &postgresIngredientRepository{db: db}
}

func (r *postgresIngredientRepository) GetIngredientByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("ingredient not found")
		}
		return nil, err
	}
	return &ingredient, nil
}

// ListIngredients returns every ingredient ordered by name
func (r *postgresIngredientRepository) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.WithContext(ctx).Order("name").Find(&ingredients).Error
	return ingredients, err
}

func (r *postgresIngredientRepository) ExistingIngredientIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var found []uint
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}
