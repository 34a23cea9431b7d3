package repository

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(rv *entity.Review) error { return r.DB.Create(rv).Error }

func (r *ReviewRepository) ExistsForOrder(userID, orderID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Review{}).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) List(limit int) ([]entity.Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Review
	err := r.DB.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *ReviewRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Review{}, id).Error
}
