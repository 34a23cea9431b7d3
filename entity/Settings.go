package entity

import (
	"gorm.io/gorm"
)

// Settings is a single-row table holding the restaurant configuration.
// Fees and prices are in minor currency units; TaxRate is a fraction
// (0.17 for 17%).
type Settings struct {
	gorm.Model
	DeliveryFee int64   `json:"deliveryFee"`
	TaxRate     float64 `json:"taxRate"`
	Currency    string  `gorm:"default:ils" json:"currency"`

	// no column defaults here: SeedSettings writes the row explicitly, and a
	// default:true tag would make a stored false impossible to insert
	AcceptDelivery bool `json:"acceptDelivery"`
	AcceptDineIn   bool `json:"acceptDineIn"`
	AcceptTakeaway bool `json:"acceptTakeaway"`

	AcceptCash        bool `json:"acceptCash"`
	AcceptCard        bool `json:"acceptCard"`
	AcceptMobileMoney bool `json:"acceptMobileMoney"`
}
