package repositories

import (
	"context"
	"errors"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	GetTagByID(ctx context.Context, id uint) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ExistingTagIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type postgresTagRepository struct {
	db *gorm.DB
}

func NewPostgresTagRepository(db *gorm.DB) TagRepository {
	return &postgresTagRepository{db: db}
}

func (r *postgresTagRepository) GetTagByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tag not found")
		}
		return nil, err
	}
	return &tag, nil
}

func (r *postgresTagRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}

func (r *postgresTagRepository) ExistingTagIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var found []uint
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}
