package repositories

import (
	"context"
	"errors"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var userRules = []constraintRule{
	{name: "unique_user_email", markers: []string{"idx_users_email", "users.email"}},
	{name: "unique_user_username", markers: []string{"idx_users_username", "users.username"}},
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	EnsureUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateAvatar(ctx context.Context, id uint, avatar *string) error
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	UserExists(ctx context.Context, id uint) (bool, error)
}

// PostgresUserRepository implements UserRepository on top of gorm
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// EnsureUser returns the user stored under user.ID, inserting user first when
// the ID is new. A concurrent insert of the same ID is not an error; an email
// or username owned by another account is a ConstraintViolation.
func (r *PostgresUserRepository) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := r.GetUserByID(ctx, user.ID)
	if err == nil || !apperrors.Is(err, apperrors.ErrNotFound) {
		return existing, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(user).Error
	if err != nil {
		return nil, translateError(err, userRules...)
	}
	return r.GetUserByID(ctx, user.ID)
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs retrieves the users with the given IDs, ordered by ID
func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error
	return users, err
}

// UserExists reports whether a user with the given ID exists
func (r *PostgresUserRepository) UserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListUsers returns every user ordered by ID
func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// UpdateAvatar sets or, with nil, clears the avatar reference
func (r *PostgresUserRepository) UpdateAvatar(ctx context.Context, id uint, avatar *string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("avatar", avatar)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}
