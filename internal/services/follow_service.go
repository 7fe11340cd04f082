package services

import (
	"context"
	"fmt"

	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/repositories"
	"github.com/anonto42/foodgram/backend/pkg/logger"
)

// FollowService manages subscriptions between users.
type FollowService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
	recipes repositories.RecipeRepository
	guard   *RelationshipGuard
}

func NewFollowService(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	recipes repositories.RecipeRepository,
	guard *RelationshipGuard,
) *FollowService {
	return &FollowService{users: users, follows: follows, recipes: recipes, guard: guard}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) (*models.Follow, error) {
	if err := s.guard.ValidateFollow(ctx, followerID, followeeID); err != nil {
		return nil, err
	}
	follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.follows.CreateFollow(ctx, follow); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Uint("follower_id", followerID).Uint("followee_id", followeeID).Msg("user followed")
	return follow, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if err := s.follows.DeleteFollow(ctx, followerID, followeeID); err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Uint("follower_id", followerID).Uint("followee_id", followeeID).Msg("user unfollowed")
	return nil
}

// GetUser returns a profile as seen by viewerID (0 for anonymous).
func (s *FollowService) GetUser(ctx context.Context, id, viewerID uint) (*models.UserProfile, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	followed, err := s.follows.GetFollowedAmong(ctx, viewerID, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("resolve subscription: %w", err)
	}
	return &models.UserProfile{User: *user, IsSubscribed: followed[id]}, nil
}

// GetSubscription returns a single followee with a preview of their recipes.
func (s *FollowService) GetSubscription(ctx context.Context, followerID, followeeID uint, recipesLimit int) (*models.Subscription, error) {
	subs, err := s.subscriptions(ctx, []uint{followeeID}, recipesLimit)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("subscription for user %d not built", followeeID)
	}
	following, err := s.follows.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	subs[0].IsSubscribed = following
	return &subs[0], nil
}

// ListSubscriptions returns the users followerID follows, in subscription
// order, each with at most recipesLimit recipes (no limit when <= 0).
func (s *FollowService) ListSubscriptions(ctx context.Context, followerID uint, recipesLimit int) ([]models.Subscription, error) {
	ids, err := s.follows.GetFollowingIDs(ctx, followerID)
	if err != nil {
		return nil, fmt.Errorf("list followees: %w", err)
	}
	subs, err := s.subscriptions(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		subs[i].IsSubscribed = true
	}
	return subs, nil
}

func (s *FollowService) subscriptions(ctx context.Context, userIDs []uint, recipesLimit int) ([]models.Subscription, error) {
	subs := make([]models.Subscription, 0, len(userIDs))
	if len(userIDs) == 0 {
		return subs, nil
	}

	users, err := s.users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load followees: %w", err)
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	recipes, err := s.recipes.ListRecipesByAuthors(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load followee recipes: %w", err)
	}
	previews := make(map[uint][]models.RecipeSummary, len(userIDs))
	counts := make(map[uint]int64, len(userIDs))
	for i := range recipes {
		r := &recipes[i]
		counts[r.AuthorID]++
		if recipesLimit > 0 && len(previews[r.AuthorID]) >= recipesLimit {
			continue
		}
		previews[r.AuthorID] = append(previews[r.AuthorID], r.Summary())
	}

	for _, id := range userIDs {
		user, ok := byID[id]
		if !ok {
			continue
		}
		preview := previews[id]
		if preview == nil {
			preview = []models.RecipeSummary{}
		}
		subs = append(subs, models.Subscription{
			UserProfile:  models.UserProfile{User: user},
			Recipes:      preview,
			RecipesCount: counts[id],
		})
	}
	return subs, nil
}
