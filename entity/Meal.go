package entity

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/localized"
)

type Meal struct {
	gorm.Model
	Name        localized.Text `gorm:"type:text" json:"name"`
	Description localized.Text `gorm:"type:text" json:"description"`
	Price       int64          `json:"price"`
	Available   bool           `json:"available"`

	Image     []byte `gorm:"type:blob" json:"-"`
	ImageType string `json:"-"`
	ImageSize int64  `json:"-"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"` // preload only on detail

	Ingredients []MealIngredient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"ingredients"`
	OrderItems  []OrderItem      `json:"-"`
}
