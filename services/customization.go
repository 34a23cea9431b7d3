package services

import (
	"fmt"
	"log"

	"github.com/amrkal/moringa-backend/entity"
)

// Customization is the priced result of applying the customer's toggles to a
// meal's ingredient links.
type Customization struct {
	UnitPrice int64 // meal base price + selected extras
	Rows      []entity.CartItemIngredient
}

// ResolveCustomization applies selected/removed toggles against the meal's
// links and the ingredient catalog. It never fails on a bad toggle or a
// missing catalog row: invalid toggles are dropped and missing lookups
// degrade to a placeholder name with the link's fallback price, so the meal
// can always be added to the cart.
func ResolveCustomization(meal *entity.Meal, catalog map[uint]entity.Ingredient, selected, removed []uint) Customization {
	links := make(map[uint]entity.MealIngredient, len(meal.Ingredients))
	for _, link := range meal.Ingredients {
		links[link.IngredientID] = link
	}

	out := Customization{UnitPrice: meal.Price}
	seen := make(map[uint]bool, len(selected)+len(removed))

	for _, id := range selected {
		link, ok := links[id]
		if !ok || link.IsDefault || seen[id] {
			// not an addable extra on this meal
			continue
		}
		seen[id] = true

		name, price := resolveIngredient(id, link, catalog)
		out.UnitPrice += price
		out.Rows = append(out.Rows, entity.CartItemIngredient{
			IngredientID: id, Name: name, Price: price,
		})
	}

	for _, id := range removed {
		link, ok := links[id]
		if !ok || !link.IsDefault || !link.IsOptional || seen[id] {
			// only removable defaults may be opted out
			continue
		}
		seen[id] = true

		name, _ := resolveIngredient(id, link, catalog)
		// removing a default never changes the price
		out.Rows = append(out.Rows, entity.CartItemIngredient{
			IngredientID: id, Name: name, Price: 0, Removed: true,
		})
	}

	return out
}

// resolveIngredient looks the id up in the catalog and degrades to the
// link's fallback when the catalog row has not loaded or was deleted.
func resolveIngredient(id uint, link entity.MealIngredient, catalog map[uint]entity.Ingredient) (string, int64) {
	if ing, ok := catalog[id]; ok {
		return ing.Name.Resolve(), ing.Price
	}
	log.Printf("ingredient %d not in catalog, using link fallback", id)
	return fmt.Sprintf("ingredient #%d", id), link.ExtraPrice
}

// CatalogIngredientIDs collects the ids a meal's links reference, for one
// batched catalog load per resolution.
func CatalogIngredientIDs(meal *entity.Meal) []uint {
	ids := make([]uint, 0, len(meal.Ingredients))
	for _, link := range meal.Ingredients {
		ids = append(ids, link.IngredientID)
	}
	return ids
}
