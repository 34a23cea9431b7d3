package entity

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/localized"
)

type Category struct {
	gorm.Model
	Name      localized.Text `gorm:"type:text" json:"name"`
	SortOrder int            `json:"sortOrder"`
	Active    bool           `gorm:"default:true" json:"active"`

	Meals []Meal `json:"-"`
}
