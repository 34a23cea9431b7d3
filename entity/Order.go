package entity

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/enums/orderstatus"
	"github.com/amrkal/moringa-backend/pkg/enums/ordertype"
	"github.com/amrkal/moringa-backend/pkg/enums/payment"
)

type Order struct {
	gorm.Model
	OrderNumber string `gorm:"uniqueIndex" json:"orderNumber"`

	OrderType     ordertype.Type     `gorm:"type:text" json:"orderType"`
	PaymentMethod payment.Method     `gorm:"type:text" json:"paymentMethod"`
	Status        orderstatus.Status `gorm:"type:text" json:"status"`

	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`

	DeliveryAddress string `json:"deliveryAddress"`
	PhoneNumber     string `json:"phoneNumber"`

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload only for admin detail

	Items   []OrderItem `json:"-"` // preload on detail
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"-"`
	Reviews []Review    `json:"-"`
}
