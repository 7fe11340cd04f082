package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/repositories"
	"github.com/anonto42/foodgram/backend/internal/shortlink"
	"github.com/anonto42/foodgram/backend/pkg/logger"
)

// RecipeInput carries the writable fields of a recipe.
type RecipeInput struct {
	AuthorID    uint
	Name        string
	Text        string
	CookingTime int
	Image       *string
	TagIDs      []uint
	Ingredients []IngredientAmount
}

const maxRecipeNameLength = 256

type RecipeService struct {
	recipes     repositories.RecipeRepository
	tags        repositories.TagRepository
	ingredients repositories.IngredientRepository
	follows     repositories.FollowRepository
	favorites   repositories.MembershipRepository
	cart        repositories.MembershipRepository
	guard       *RelationshipGuard
}

func NewRecipeService(
	recipes repositories.RecipeRepository,
	tags repositories.TagRepository,
	ingredients repositories.IngredientRepository,
	follows repositories.FollowRepository,
	favorites repositories.MembershipRepository,
	cart repositories.MembershipRepository,
	guard *RelationshipGuard,
) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		follows:     follows,
		favorites:   favorites,
		cart:        cart,
		guard:       guard,
	}
}

// CreateRecipe validates in and stores the recipe with its tags, ingredient
// lines and a fresh short link in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, in RecipeInput) (*models.RecipeView, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    in.AuthorID,
		Name:        strings.TrimSpace(in.Name),
		Text:        in.Text,
		CookingTime: in.CookingTime,
		Image:       in.Image,
	}
	if err := s.recipes.CreateRecipe(ctx, recipe, in.TagIDs, ingredientRows(in.Ingredients)); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Uint("recipe_id", recipe.ID).Uint("author_id", recipe.AuthorID).Msg("recipe created")
	return s.GetRecipe(ctx, recipe.ID, in.AuthorID)
}

// UpdateRecipe replaces every writable field of the recipe. Only the author may
// update it; the short link is preserved.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeID, callerID uint, in RecipeInput) (*models.RecipeView, error) {
	recipe, err := s.recipes.FindRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != callerID {
		return nil, apperrors.Permission("only the author can change this recipe")
	}
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	recipe.Name = strings.TrimSpace(in.Name)
	recipe.Text = in.Text
	recipe.CookingTime = in.CookingTime
	recipe.Image = in.Image
	if err := s.recipes.UpdateRecipe(ctx, recipe, in.TagIDs, ingredientRows(in.Ingredients)); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Uint("recipe_id", recipe.ID).Msg("recipe updated")
	return s.GetRecipe(ctx, recipe.ID, callerID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, callerID uint) error {
	recipe, err := s.recipes.FindRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != callerID {
		return apperrors.Permission("only the author can delete this recipe")
	}
	if err := s.recipes.DeleteRecipe(ctx, recipeID); err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Uint("recipe_id", recipeID).Msg("recipe deleted")
	return nil
}

// GetRecipe returns the recipe as seen by viewerID (0 for anonymous).
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID, viewerID uint) (*models.RecipeView, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(ctx, []models.Recipe{*recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListRecipes returns the recipes matching filter, newest first, as seen by
// filter.ViewerID.
func (s *RecipeService) ListRecipes(ctx context.Context, filter repositories.RecipeFilter) ([]models.RecipeView, error) {
	recipes, err := s.recipes.ListRecipes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return s.buildViews(ctx, recipes, filter.ViewerID)
}

// ToggleFavorite adds the recipe to the user's favorites when add is set and
// removes it otherwise.
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID, recipeID uint, add bool) (*models.RecipeSummary, error) {
	return s.toggle(ctx, userID, recipeID, add, s.favorites, s.guard.ValidateFavorite)
}

// ToggleCart adds the recipe to the user's shopping cart when add is set and
// removes it otherwise.
func (s *RecipeService) ToggleCart(ctx context.Context, userID, recipeID uint, add bool) (*models.RecipeSummary, error) {
	return s.toggle(ctx, userID, recipeID, add, s.cart, s.guard.ValidateCartEntry)
}

func (s *RecipeService) toggle(
	ctx context.Context,
	userID, recipeID uint,
	add bool,
	repo repositories.MembershipRepository,
	validate func(ctx context.Context, userID, recipeID uint) error,
) (*models.RecipeSummary, error) {
	recipe, err := s.recipes.FindRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if add {
		if err := validate(ctx, userID, recipeID); err != nil {
			return nil, err
		}
		if err := repo.Add(ctx, userID, recipeID); err != nil {
			return nil, err
		}
	} else if err := repo.Remove(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	summary := recipe.Summary()
	return &summary, nil
}

// GetShortLink returns the short link token of a recipe.
func (s *RecipeService) GetShortLink(ctx context.Context, recipeID uint) (string, error) {
	recipe, err := s.recipes.FindRecipe(ctx, recipeID)
	if err != nil {
		return "", err
	}
	if err := s.recipes.EnsureShortLink(ctx, recipe); err != nil {
		return "", err
	}
	return *recipe.ShortLink, nil
}

// ResolveShortLink maps a short link token to its recipe ID.
func (s *RecipeService) ResolveShortLink(ctx context.Context, token string) (uint, error) {
	if !shortlink.Valid(token) {
		return 0, apperrors.NotFound("short link not found")
	}
	return s.recipes.GetRecipeIDByShortLink(ctx, token)
}

func (s *RecipeService) validateInput(ctx context.Context, in RecipeInput) error {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return apperrors.Validation("name is required")
	case utf8.RuneCountInString(name) > maxRecipeNameLength:
		return apperrors.Validationf("name must be at most %d characters", maxRecipeNameLength)
	case strings.TrimSpace(in.Text) == "":
		return apperrors.Validation("text is required")
	case in.CookingTime < models.MinCookingTime || in.CookingTime > models.MaxCookingTime:
		return apperrors.Validationf("cooking time must be between %d and %d", models.MinCookingTime, models.MaxCookingTime)
	}
	if err := ValidateRecipeTags(in.TagIDs); err != nil {
		return err
	}
	if err := ValidateRecipeIngredients(in.Ingredients); err != nil {
		return err
	}

	foundTags, err := s.tags.ExistingTagIDs(ctx, in.TagIDs)
	if err != nil {
		return fmt.Errorf("check tags: %w", err)
	}
	if missing := missingIDs(in.TagIDs, foundTags); len(missing) > 0 {
		return apperrors.Validationf("unknown tags: %s", joinIDs(missing))
	}

	ids := make([]uint, len(in.Ingredients))
	for i, item := range in.Ingredients {
		ids[i] = item.IngredientID
	}
	foundIngredients, err := s.ingredients.ExistingIngredientIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check ingredients: %w", err)
	}
	if missing := missingIDs(ids, foundIngredients); len(missing) > 0 {
		return apperrors.Validationf("unknown ingredients: %s", joinIDs(missing))
	}
	return nil
}

// buildViews resolves viewer flags with one query per flag for the whole page.
func (s *RecipeService) buildViews(ctx context.Context, recipes []models.Recipe, viewerID uint) ([]models.RecipeView, error) {
	recipeIDs := make([]uint, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for i, r := range recipes {
		recipeIDs[i] = r.ID
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited, err := s.favorites.RecipeIDsAmong(ctx, viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve favorites: %w", err)
	}
	inCart, err := s.cart.RecipeIDsAmong(ctx, viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve shopping cart: %w", err)
	}
	followed, err := s.follows.GetFollowedAmong(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve subscriptions: %w", err)
	}

	views := make([]models.RecipeView, len(recipes))
	for i, r := range recipes {
		ingredients := make([]models.RecipeIngredientView, len(r.Ingredients))
		for j, ri := range r.Ingredients {
			ingredients[j] = models.RecipeIngredientView{
				ID:              ri.IngredientID,
				Name:            ri.Ingredient.Name,
				MeasurementUnit: ri.Ingredient.MeasurementUnit,
				Amount:          ri.Amount,
			}
		}
		tags := r.Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		views[i] = models.RecipeView{
			ID:               r.ID,
			Name:             r.Name,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			Image:            r.Image,
			Author:           models.UserProfile{User: r.Author, IsSubscribed: followed[r.AuthorID]},
			Tags:             tags,
			Ingredients:      ingredients,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
		}
	}
	return views, nil
}

func ingredientRows(items []IngredientAmount) []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, len(items))
	for i, item := range items {
		rows[i] = models.RecipeIngredient{IngredientID: item.IngredientID, Amount: item.Amount}
	}
	return rows
}

func missingIDs(want, found []uint) []uint {
	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	var missing []uint
	for _, id := range want {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
