package entity

import (
	"gorm.io/gorm"
)

type OrderItemIngredient struct {
	gorm.Model
	OrderItemID uint      `json:"orderItemId"`
	OrderItem   OrderItem `json:"-"` // not serialized back, avoids a cycle

	IngredientID uint   `json:"ingredientId"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	Removed      bool   `json:"removed"`
}
