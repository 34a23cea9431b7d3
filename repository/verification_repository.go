package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

type VerificationRepository struct{ DB *gorm.DB }

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{DB: db}
}

func (r *VerificationRepository) Create(v *entity.PhoneVerification) error {
	return r.DB.Create(v).Error
}

// LatestForPhone returns the newest unverified code for the number.
func (r *VerificationRepository) LatestForPhone(userID uint, phone string) (*entity.PhoneVerification, error) {
	var v entity.PhoneVerification
	err := r.DB.
		Where("user_id = ? AND phone_number = ? AND verified_at IS NULL", userID, phone).
		Order("id DESC").
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepository) MarkVerified(id uint, at time.Time) error {
	return r.DB.Model(&entity.PhoneVerification{}).Where("id = ?", id).
		Update("verified_at", at).Error
}

func (r *VerificationRepository) IncrementAttempts(id uint) error {
	return r.DB.Model(&entity.PhoneVerification{}).Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

// InvalidateForPhone expires outstanding codes when a new one is issued.
func (r *VerificationRepository) InvalidateForPhone(userID uint, phone string, now time.Time) error {
	return r.DB.Model(&entity.PhoneVerification{}).
		Where("user_id = ? AND phone_number = ? AND verified_at IS NULL", userID, phone).
		Update("expires_at", now).Error
}
