package entity

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/enums/ingredientrole"
)

// MealIngredient links a meal to a catalog ingredient.
// IsDefault: included in the base price. IsOptional: for defaults, the
// customer may remove it; for non-defaults, the customer may add it.
// ExtraPrice is the fallback charge when the catalog row is unavailable.
type MealIngredient struct {
	gorm.Model
	MealID uint `gorm:"index:idx_meal_ingredient,unique" json:"mealId"`
	Meal   Meal `json:"-"`

	IngredientID uint       `gorm:"index:idx_meal_ingredient,unique" json:"ingredientId"`
	Ingredient   Ingredient `json:"-"` // preload for authoring views

	IsDefault  bool  `json:"isDefault"`
	IsOptional bool  `json:"isOptional"`
	ExtraPrice int64 `json:"extraPrice"`
	SortOrder  int   `json:"sortOrder"`
}

// Role maps the link flags onto the authoring enum.
func (mi *MealIngredient) Role() ingredientrole.Role {
	if mi.IsDefault {
		return ingredientrole.Default
	}
	return ingredientrole.Extra
}
