package services

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/repositories"
	"github.com/anonto42/foodgram/backend/pkg/logger"
)

// UserService provisions accounts for verified callers and manages profiles.
type UserService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
}

func NewUserService(users repositories.UserRepository, follows repositories.FollowRepository) *UserService {
	return &UserService{users: users, follows: follows}
}

// EnsureUser returns the account behind claims, creating it on first use.
// The username defaults to the local part of the email.
func (s *UserService) EnsureUser(ctx context.Context, claims *models.JwtCustomClaims) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err == nil || !apperrors.Is(err, apperrors.ErrNotFound) {
		return user, err
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return nil, apperrors.Unauthorized("token carries no email claim")
	}
	username := strings.TrimSpace(claims.Username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	user, err = s.users.EnsureUser(ctx, &models.User{
		ID:        claims.UserID,
		Email:     email,
		Username:  username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	})
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user provisioned")
	return user, nil
}

// ListUsers returns every user as seen by viewerID (0 for anonymous).
func (s *UserService) ListUsers(ctx context.Context, viewerID uint) ([]models.UserProfile, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	followed, err := s.follows.GetFollowedAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve subscriptions: %w", err)
	}

	profiles := make([]models.UserProfile, len(users))
	for i, u := range users {
		profiles[i] = models.UserProfile{User: u, IsSubscribed: followed[u.ID]}
	}
	return profiles, nil
}

// SetAvatar stores an opaque avatar reference for the user.
func (s *UserService) SetAvatar(ctx context.Context, userID uint, avatar string) (string, error) {
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		return "", apperrors.Validation("avatar must not be empty")
	}
	if err := s.users.UpdateAvatar(ctx, userID, &avatar); err != nil {
		return "", err
	}
	logger.Ctx(ctx).Debug().Uint("user_id", userID).Msg("avatar updated")
	return avatar, nil
}

// ClearAvatar removes the user's avatar. Clearing an empty avatar succeeds.
func (s *UserService) ClearAvatar(ctx context.Context, userID uint) error {
	if err := s.users.UpdateAvatar(ctx, userID, nil); err != nil {
		return err
	}
	logger.Ctx(ctx).Debug().Uint("user_id", userID).Msg("avatar cleared")
	return nil
}
