package repositories

import (
	"context"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	GetFollowingIDs(ctx context.Context, followerID uint) ([]uint, error)
	GetFollowedAmong(ctx context.Context, followerID uint, userIDs []uint) (map[uint]bool, error)
}

// PostgresFollowRepository implements FollowRepository on top of gorm
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts a follow row. The unique and check constraints arbitrate
// concurrent and self-referencing writes.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	err := r.db.WithContext(ctx).Create(follow).Error
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return apperrors.DuplicateRelation("already following this user")
	case isCheckViolation(err):
		return apperrors.SelfFollow("cannot follow yourself")
	case isForeignKeyViolation(err):
		return apperrors.NotFound("user not found")
	default:
		return translateError(err)
	}
}

func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followeeID uint) error {
	res := r.db.WithContext(ctx).Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowingIDs returns the followees of followerID in subscription order
func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", followerID).Order("id").Pluck("followee_id", &ids).Error
	return ids, err
}

// GetFollowedAmong reports which of userIDs are followed by followerID
func (r *PostgresFollowRepository) GetFollowedAmong(ctx context.Context, followerID uint, userIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if followerID == 0 || len(userIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id IN ?", followerID, userIDs).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
