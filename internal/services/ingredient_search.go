package services

import (
	"context"
	"sort"
	"strings"

	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/repositories"
	"golang.org/x/text/cases"
)

// CatalogService serves the read-only tag and ingredient catalogs.
type CatalogService struct {
	tags        repositories.TagRepository
	ingredients repositories.IngredientRepository
}

func NewCatalogService(tags repositories.TagRepository, ingredients repositories.IngredientRepository) *CatalogService {
	return &CatalogService{tags: tags, ingredients: ingredients}
}

func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.ListTags(ctx)
}

func (s *CatalogService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tags.GetTagByID(ctx, id)
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.ingredients.GetIngredientByID(ctx, id)
}

// SearchIngredients returns ingredients whose name contains query, ignoring
// case. Prefix matches come before the rest. An empty query lists everything.
func (s *CatalogService) SearchIngredients(ctx context.Context, query string) ([]models.Ingredient, error) {
	all, err := s.ingredients.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	return RankIngredients(all, query), nil
}

const (
	tierPrefix = iota
	tierSubstring
	tierNone
)

// RankIngredients filters and orders ingredients for query. Matching uses
// Unicode case folding; within a tier names are ordered by collation.
func RankIngredients(ingredients []models.Ingredient, query string) []models.Ingredient {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	type ranked struct {
		ingredient models.Ingredient
		tier       int
	}
	matches := make([]ranked, 0, len(ingredients))
	for _, ing := range ingredients {
		tier := matchTier(fold.String(ing.Name), needle)
		if tier == tierNone {
			continue
		}
		matches = append(matches, ranked{ingredient: ing, tier: tier})
	}

	c := newNameCollator()
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		return c.compare(matches[i].ingredient.Name, matches[j].ingredient.Name) < 0
	})

	out := make([]models.Ingredient, len(matches))
	for i, m := range matches {
		out[i] = m.ingredient
	}
	return out
}

func matchTier(name, needle string) int {
	switch {
	case strings.HasPrefix(name, needle):
		return tierPrefix
	case strings.Contains(name, needle):
		return tierSubstring
	default:
		return tierNone
	}
}
