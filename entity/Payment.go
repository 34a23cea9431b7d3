package entity

import (
	"time"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/enums/payment"
)

type Payment struct {
	gorm.Model
	Amount int64          `json:"amount"`
	Method payment.Method `gorm:"type:text" json:"method"`
	Status payment.Status `gorm:"type:text" json:"status"`

	// ProviderRef is the processor-side handle: the Stripe payment-intent
	// id for card, the push-request reference for mobile money.
	ProviderRef string     `json:"providerRef"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"` // preload only on the order detail endpoint
}
