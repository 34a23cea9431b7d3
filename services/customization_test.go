package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/localized"
)

func testMeal() *entity.Meal {
	m := &entity.Meal{
		Name:  localized.FromString("Burger"),
		Price: 4000,
	}
	m.Ingredients = []entity.MealIngredient{
		{IngredientID: 1, IsDefault: true, IsOptional: true},  // lettuce, removable
		{IngredientID: 2, IsDefault: true, IsOptional: false}, // bun, fixed
		{IngredientID: 3, ExtraPrice: 250},                    // cheese
		{IngredientID: 4, ExtraPrice: 900},                    // bacon
	}
	return m
}

func testCatalog() map[uint]entity.Ingredient {
	catalog := map[uint]entity.Ingredient{
		1: {Name: localized.FromString("Lettuce"), Price: 100},
		2: {Name: localized.FromString("Bun"), Price: 150},
		3: {Name: localized.FromString("Cheese"), Price: 300},
		4: {Name: localized.FromString("Bacon"), Price: 1000},
	}
	for id, ing := range catalog {
		ing.ID = id
		catalog[id] = ing
	}
	return catalog
}

func TestResolveCustomizationBasePrice(t *testing.T) {
	got := ResolveCustomization(testMeal(), testCatalog(), nil, nil)
	assert.Equal(t, int64(4000), got.UnitPrice)
	assert.Empty(t, got.Rows)
}

func TestResolveCustomizationExtrasPricedFromCatalog(t *testing.T) {
	got := ResolveCustomization(testMeal(), testCatalog(), []uint{3, 4}, nil)

	// catalog prices win over the link fallbacks
	assert.Equal(t, int64(4000+300+1000), got.UnitPrice)
	assert.Len(t, got.Rows, 2)
	assert.Equal(t, "Cheese", got.Rows[0].Name)
	assert.Equal(t, int64(300), got.Rows[0].Price)
	assert.False(t, got.Rows[0].Removed)
}

func TestResolveCustomizationRemovedDefaultIsFree(t *testing.T) {
	got := ResolveCustomization(testMeal(), testCatalog(), nil, []uint{1})

	assert.Equal(t, int64(4000), got.UnitPrice)
	assert.Len(t, got.Rows, 1)
	assert.True(t, got.Rows[0].Removed)
	assert.Equal(t, int64(0), got.Rows[0].Price)
	assert.Equal(t, "Lettuce", got.Rows[0].Name)
}

func TestResolveCustomizationInvalidTogglesDropped(t *testing.T) {
	got := ResolveCustomization(testMeal(), testCatalog(),
		[]uint{1, 2, 99}, // defaults and an unlinked id are not addable
		[]uint{2, 3, 99}, // fixed defaults, extras and unlinked ids are not removable
	)
	assert.Equal(t, int64(4000), got.UnitPrice)
	assert.Empty(t, got.Rows)
}

func TestResolveCustomizationDuplicatesCountedOnce(t *testing.T) {
	got := ResolveCustomization(testMeal(), testCatalog(), []uint{3, 3, 3}, []uint{1, 1})

	assert.Equal(t, int64(4300), got.UnitPrice)
	assert.Len(t, got.Rows, 2)
}

func TestResolveCustomizationMissingCatalogRowDegrades(t *testing.T) {
	catalog := testCatalog()
	delete(catalog, 4)

	got := ResolveCustomization(testMeal(), catalog, []uint{3, 4}, nil)

	// the missing row falls back to the link price and a placeholder name
	// instead of failing the add
	assert.Equal(t, int64(4000+300+900), got.UnitPrice)
	assert.Len(t, got.Rows, 2)
	assert.Equal(t, "ingredient #4", got.Rows[1].Name)
	assert.Equal(t, int64(900), got.Rows[1].Price)
}

func TestResolveCustomizationEmptyCatalog(t *testing.T) {
	got := ResolveCustomization(testMeal(), map[uint]entity.Ingredient{}, []uint{3}, []uint{1})

	assert.Equal(t, int64(4000+250), got.UnitPrice)
	assert.Len(t, got.Rows, 2)
	assert.Equal(t, "ingredient #3", got.Rows[0].Name)
	assert.Equal(t, "ingredient #1", got.Rows[1].Name)
}

func TestResolveCustomizationSelectionsAndRemovalsDisjoint(t *testing.T) {
	got := ResolveCustomization(testMeal(), testCatalog(), []uint{3}, []uint{1})

	seen := map[uint]bool{}
	for _, row := range got.Rows {
		assert.False(t, seen[row.IngredientID], "ingredient %d appears twice", row.IngredientID)
		seen[row.IngredientID] = true
		if row.Removed {
			assert.Zero(t, row.Price)
		}
	}
}

func TestCatalogIngredientIDs(t *testing.T) {
	assert.ElementsMatch(t, []uint{1, 2, 3, 4}, CatalogIngredientIDs(testMeal()))
	assert.Empty(t, CatalogIngredientIDs(&entity.Meal{}))
}
