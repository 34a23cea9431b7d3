package entity

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `gorm:"not null;default:customer" json:"role"`

	// set once the number passes OTP verification; checkout gates on it
	PhoneVerifiedAt *time.Time `json:"phoneVerifiedAt,omitempty"`

	Avatar     []byte `json:"-" gorm:"column:avatar"`
	AvatarType string `json:"-" gorm:"column:avatar_type"`
	AvatarSize int64  `json:"-" gorm:"column:avatar_size"`

	// preload only when needed
	Orders  []Order  `json:"-"`
	Reviews []Review `json:"-"`
	Cart    *Cart    `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) PhoneVerified() bool {
	return u.PhoneNumber != "" && u.PhoneVerifiedAt != nil
}
