package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/repositories"
)

// IngredientAmount is one requested ingredient line of a recipe.
type IngredientAmount struct {
	IngredientID uint
	Amount       int
}

// RelationshipGuard checks cross-entity rules before a relationship write is
// committed. The storage constraints still arbitrate concurrent writers.
type RelationshipGuard struct {
	users     repositories.UserRepository
	follows   repositories.FollowRepository
	favorites repositories.MembershipRepository
	cart      repositories.MembershipRepository
}

func NewRelationshipGuard(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	favorites repositories.MembershipRepository,
	cart repositories.MembershipRepository,
) *RelationshipGuard {
	return &RelationshipGuard{users: users, follows: follows, favorites: favorites, cart: cart}
}

// ValidateFollow rejects self follows, existing pairs and unknown followees.
func (g *RelationshipGuard) ValidateFollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return apperrors.SelfFollow("cannot follow yourself")
	}
	exists, err := g.users.UserExists(ctx, followeeID)
	if err != nil {
		return fmt.Errorf("check followee: %w", err)
	}
	if !exists {
		return apperrors.NotFound("user not found")
	}
	following, err := g.follows.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("check follow: %w", err)
	}
	if following {
		return apperrors.DuplicateRelation("already following this user")
	}
	return nil
}

func (g *RelationshipGuard) ValidateFavorite(ctx context.Context, userID, recipeID uint) error {
	return validateMembership(ctx, g.favorites, userID, recipeID, "recipe already in favorites")
}

func (g *RelationshipGuard) ValidateCartEntry(ctx context.Context, userID, recipeID uint) error {
	return validateMembership(ctx, g.cart, userID, recipeID, "recipe already in shopping cart")
}

func validateMembership(ctx context.Context, repo repositories.MembershipRepository, userID, recipeID uint, msg string) error {
	exists, err := repo.Exists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.DuplicateRelation(msg)
	}
	return nil
}

// ValidateRecipeIngredients requires a non-empty list of distinct ingredients
// with amounts inside [MinAmount, MaxAmount].
func ValidateRecipeIngredients(items []IngredientAmount) error {
	if len(items) == 0 {
		return apperrors.Validation("recipe must have at least one ingredient")
	}
	seen := make(map[uint]int, len(items))
	for _, item := range items {
		if item.Amount < models.MinAmount {
			return apperrors.Validationf("ingredient %d: amount must be at least %d", item.IngredientID, models.MinAmount)
		}
		if item.Amount > models.MaxAmount {
			return apperrors.Validationf("ingredient %d: amount must be at most %d", item.IngredientID, models.MaxAmount)
		}
		seen[item.IngredientID]++
	}
	if dups := repeated(seen); len(dups) > 0 {
		return apperrors.Validationf("duplicate ingredients: %s", joinIDs(dups)).
			WithDetails(map[string][]uint{"duplicate_ingredients": dups})
	}
	return nil
}

// ValidateRecipeTags requires a non-empty list of distinct tags.
func ValidateRecipeTags(tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return apperrors.Validation("recipe must have at least one tag")
	}
	seen := make(map[uint]int, len(tagIDs))
	for _, id := range tagIDs {
		seen[id]++
	}
	if dups := repeated(seen); len(dups) > 0 {
		return apperrors.Validationf("duplicate tags: %s", joinIDs(dups)).
			WithDetails(map[string][]uint{"duplicate_tags": dups})
	}
	return nil
}

func repeated(counts map[uint]int) []uint {
	var dups []uint
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i] < dups[j] })
	return dups
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
