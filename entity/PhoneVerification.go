package entity

import (
	"time"

	"gorm.io/gorm"
)

type PhoneVerification struct {
	gorm.Model
	PhoneNumber string `gorm:"index" json:"phoneNumber"`
	Code        string `json:"-"`

	ExpiresAt  time.Time  `json:"expiresAt"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	Attempts   int        `json:"-"`

	UserID uint `json:"userId"`
	User   User `json:"-"`
}

func (v *PhoneVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
