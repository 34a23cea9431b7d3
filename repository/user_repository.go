package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *entity.User) error { return r.DB.Create(u).Error }
func (r *UserRepository) Update(u *entity.User) error { return r.DB.Save(u).Error }

// MarkPhoneVerified records the verified number on the user. Changing the
// number later resets the gate (see UpdatePhone).
func (r *UserRepository) MarkPhoneVerified(userID uint, phone string, at time.Time) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]any{
			"phone_number":      phone,
			"phone_verified_at": at,
		}).Error
}

// UpdatePhone stores the new number and resets the verification stamp in a
// single write, the counterpart of MarkPhoneVerified.
func (r *UserRepository) UpdatePhone(userID uint, phone string) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]any{
			"phone_number":      phone,
			"phone_verified_at": nil,
		}).Error
}
