package entity

import (
	"gorm.io/gorm"
)

// CartItemIngredient records one modifier on a cart line.
// Removed=false: a selected extra, Price is its charge.
// Removed=true: an opted-out default, Price is always 0.
type CartItemIngredient struct {
	gorm.Model
	CartItemID uint     `json:"cartItemId"`
	CartItem   CartItem `json:"-"`

	IngredientID uint   `json:"ingredientId"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	Removed      bool   `json:"removed"`
}
