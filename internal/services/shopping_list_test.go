package services

import (
	"context"
	"testing"

	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateLines_GroupsByNameAndUnit(t *testing.T) {
	lines := []models.IngredientLine{
		{RecipeID: 1, IngredientName: "flour", MeasurementUnit: "g", Amount: 200},
		{RecipeID: 1, IngredientName: "egg", MeasurementUnit: "pcs", Amount: 2},
		{RecipeID: 2, IngredientName: "flour", MeasurementUnit: "g", Amount: 100},
		{RecipeID: 2, IngredientName: "sugar", MeasurementUnit: "g", Amount: 50},
	}

	assert.Equal(t, []models.ShoppingItem{
		{IngredientName: "egg", MeasurementUnit: "pcs", TotalAmount: 2},
		{IngredientName: "flour", MeasurementUnit: "g", TotalAmount: 300},
		{IngredientName: "sugar", MeasurementUnit: "g", TotalAmount: 50},
	}, AggregateLines(lines))
}

func TestAggregateLines_NoUnitConversion(t *testing.T) {
	lines := []models.IngredientLine{
		{IngredientName: "sugar", MeasurementUnit: "kg", Amount: 1},
		{IngredientName: "sugar", MeasurementUnit: "g", Amount: 500},
		{IngredientName: "sugar", MeasurementUnit: "g", Amount: 20},
	}

	assert.Equal(t, []models.ShoppingItem{
		{IngredientName: "sugar", MeasurementUnit: "g", TotalAmount: 520},
		{IngredientName: "sugar", MeasurementUnit: "kg", TotalAmount: 1},
	}, AggregateLines(lines))
}

func TestAggregateLines_RussianOrdering(t *testing.T) {
	lines := []models.IngredientLine{
		{IngredientName: "яйца", MeasurementUnit: "шт.", Amount: 3},
		{IngredientName: "Молоко", MeasurementUnit: "мл", Amount: 200},
		{IngredientName: "ёжевика", MeasurementUnit: "г", Amount: 10},
		{IngredientName: "апельсин", MeasurementUnit: "шт.", Amount: 1},
	}

	items := AggregateLines(lines)
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.IngredientName
	}
	assert.Equal(t, []string{"апельсин", "ёжевика", "Молоко", "яйца"}, names)
}

func TestAggregateLines_Empty(t *testing.T) {
	items := AggregateLines(nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRender(t *testing.T) {
	got := Render([]models.ShoppingItem{
		{IngredientName: "egg", MeasurementUnit: "pcs", TotalAmount: 2},
		{IngredientName: "flour", MeasurementUnit: "g", TotalAmount: 300},
	})
	assert.Equal(t, "Список покупок:\n\n- egg (pcs) — 2\n- flour (g) — 300\n", got)
	assert.Equal(t, "Список покупок:\n\n", Render(nil))
}

func TestDownloadShoppingList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "alice")
	shopper := testutil.CreateUser(t, f.db, "bob")
	flour := testutil.CreateIngredient(t, f.db, "flour", "g")
	egg := testutil.CreateIngredient(t, f.db, "egg", "pcs")
	sugar := testutil.CreateIngredient(t, f.db, "sugar", "g")
	r1 := testutil.CreateRecipe(t, f.db, author, "Recipe1", nil,
		testutil.IngredientAmount{Ingredient: flour, Amount: 200},
		testutil.IngredientAmount{Ingredient: egg, Amount: 2})
	r2 := testutil.CreateRecipe(t, f.db, author, "Recipe2", nil,
		testutil.IngredientAmount{Ingredient: flour, Amount: 100},
		testutil.IngredientAmount{Ingredient: sugar, Amount: 50})

	empty, err := f.shopping.Aggregate(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = f.recipes.ToggleCart(ctx, shopper.ID, r1.ID, true)
	require.NoError(t, err)
	_, err = f.recipes.ToggleCart(ctx, shopper.ID, r2.ID, true)
	require.NoError(t, err)

	first, err := f.shopping.Aggregate(ctx, shopper.ID)
	require.NoError(t, err)
	second, err := f.shopping.Aggregate(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	doc, err := f.shopping.DownloadShoppingList(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, "Список покупок:\n\n- egg (pcs) — 2\n- flour (g) — 300\n- sugar (g) — 50\n", doc)
}
