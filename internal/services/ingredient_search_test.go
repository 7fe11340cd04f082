package services

import (
	"context"
	"testing"

	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(ingredients []models.Ingredient) []string {
	out := make([]string, len(ingredients))
	for i, ing := range ingredients {
		out[i] = ing.Name
	}
	return out
}

func TestRankIngredients(t *testing.T) {
	catalog := []models.Ingredient{
		{ID: 1, Name: "Молоко"},
		{ID: 2, Name: "Миндальное молоко"},
		{ID: 3, Name: "Ванилин"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"мол", []string{"Молоко", "Миндальное молоко"}},
		{"МОЛ", []string{"Молоко", "Миндальное молоко"}},
		{"ин", []string{"Ванилин", "Миндальное молоко"}},
		{"ван", []string{"Ванилин"}},
		{"сыр", []string{}},
		{"", []string{"Ванилин", "Миндальное молоко", "Молоко"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, names(RankIngredients(catalog, tt.query)))
		})
	}
}

func TestRankIngredients_PrefixTierSortedByName(t *testing.T) {
	catalog := []models.Ingredient{
		{Name: "сахарная пудра"},
		{Name: "ванильный сахар"},
		{Name: "Сахар"},
		{Name: "тростниковый сахар"},
	}

	assert.Equal(t,
		[]string{"Сахар", "сахарная пудра", "ванильный сахар", "тростниковый сахар"},
		names(RankIngredients(catalog, "сах")))
}

func TestCatalogService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := testutil.CreateIngredient(t, f.db, "Молоко", "мл")
	testutil.CreateIngredient(t, f.db, "Миндальное молоко", "мл")
	testutil.CreateIngredient(t, f.db, "Ванилин", "г")
	tag := testutil.CreateTag(t, f.db, "breakfast")

	found, err := f.catalog.SearchIngredients(ctx, "мол")
	require.NoError(t, err)
	assert.Equal(t, []string{"Молоко", "Миндальное молоко"}, names(found))

	got, err := f.catalog.GetIngredient(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "мл", got.MeasurementUnit)

	tags, err := f.catalog.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	one, err := f.catalog.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", one.Slug)
}
