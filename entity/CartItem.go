package entity

import (
	"gorm.io/gorm"
)

// CartItem is one line in the cart: a meal snapshot plus its customization.
// The same meal may appear on several lines; lines are addressed by their
// own id, never merged.
type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	MealID uint `json:"mealId"`
	Meal   Meal `json:"-"`

	// MealName is coerced to a plain string when the line is created,
	// so order assembly never sees a localized object.
	MealName string `json:"mealName"`

	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"` // base price + selected extras
	Total     int64  `json:"total"`     // UnitPrice * Qty
	Note      string `json:"note"`      // special instructions

	Ingredients []CartItemIngredient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"ingredients"`
}

// Selected returns the billable extras on the line.
func (ci *CartItem) Selected() []CartItemIngredient {
	out := make([]CartItemIngredient, 0, len(ci.Ingredients))
	for _, ing := range ci.Ingredients {
		if !ing.Removed {
			out = append(out, ing)
		}
	}
	return out
}

// RemovedDefaults returns the opted-out default ingredients.
func (ci *CartItem) RemovedDefaults() []CartItemIngredient {
	out := make([]CartItemIngredient, 0, len(ci.Ingredients))
	for _, ing := range ci.Ingredients {
		if ing.Removed {
			out = append(out, ing)
		}
	}
	return out
}
