package entity

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/localized"
)

// Ingredient is the catalog row modifiers resolve against.
// Price is in minor currency units, charged only when added as an extra.
type Ingredient struct {
	gorm.Model
	Name      localized.Text `gorm:"type:text" json:"name"`
	Price     int64          `json:"price"`
	Available bool           `json:"available"`

	MealLinks []MealIngredient `gorm:"foreignKey:IngredientID" json:"-"`
}
