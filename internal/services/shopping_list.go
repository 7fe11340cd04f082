package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/repositories"
	"github.com/anonto42/foodgram/backend/pkg/logger"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ShoppingListHeader opens every rendered shopping list.
const ShoppingListHeader = "Список покупок:"

// ShoppingListService sums the ingredients of every recipe in a user's cart.
type ShoppingListService struct {
	cart repositories.ShoppingCartRepository
}

func NewShoppingListService(cart repositories.ShoppingCartRepository) *ShoppingListService {
	return &ShoppingListService{cart: cart}
}

// Aggregate returns the user's cart ingredients grouped by (name, unit) with
// amounts summed, ordered by name. An empty cart yields an empty slice.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uint) ([]models.ShoppingItem, error) {
	lines, err := s.cart.ListIngredientLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AggregateLines(lines), nil
}

// DownloadShoppingList renders the aggregated list as a plain-text document.
func (s *ShoppingListService) DownloadShoppingList(ctx context.Context, userID uint) (string, error) {
	items, err := s.Aggregate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("aggregate shopping list: %w", err)
	}
	logger.Ctx(ctx).Debug().Uint("user_id", userID).Int("items", len(items)).Msg("shopping list rendered")
	return Render(items), nil
}

type itemKey struct {
	name string
	unit string
}

// AggregateLines groups lines by (name, unit) and sums their amounts. Units are
// never converted: "sugar (g)" and "sugar (kg)" stay separate.
func AggregateLines(lines []models.IngredientLine) []models.ShoppingItem {
	totals := make(map[itemKey]int)
	for _, line := range lines {
		totals[itemKey{name: line.IngredientName, unit: line.MeasurementUnit}] += line.Amount
	}

	items := make([]models.ShoppingItem, 0, len(totals))
	for key, total := range totals {
		items = append(items, models.ShoppingItem{
			IngredientName:  key.name,
			MeasurementUnit: key.unit,
			TotalAmount:     total,
		})
	}

	c := newNameCollator()
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if cmp := c.compare(a.IngredientName, b.IngredientName); cmp != 0 {
			return cmp < 0
		}
		return c.compare(a.MeasurementUnit, b.MeasurementUnit) < 0
	})
	return items
}

// Render formats items as the downloadable shopping list.
func Render(items []models.ShoppingItem) string {
	var b strings.Builder
	b.WriteString(ShoppingListHeader)
	b.WriteString("\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s) — %d\n", item.IngredientName, item.MeasurementUnit, item.TotalAmount)
	}
	return b.String()
}

// nameCollator orders names with Russian collation and falls back to byte
// order so distinct strings never compare equal. Not safe for concurrent use.
type nameCollator struct {
	c *collate.Collator
}

func newNameCollator() nameCollator {
	return nameCollator{c: collate.New(language.Russian)}
}

func (n nameCollator) compare(a, b string) int {
	if cmp := n.c.CompareString(a, b); cmp != 0 {
		return cmp
	}
	return strings.Compare(a, b)
}
