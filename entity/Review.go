package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`

	UserID  uint  `json:"userId"`
	User    User  `json:"-"`
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`
}
