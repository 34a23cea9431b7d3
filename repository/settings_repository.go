package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

type SettingsRepository struct{ DB *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// Get returns the single settings row. Before the seed has run it returns
// zero-value settings so totals render with defaults instead of failing.
func (r *SettingsRepository) Get() (*entity.Settings, error) {
	var s entity.Settings
	err := r.DB.Order("id").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Settings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Update(s *entity.Settings) error {
	return r.DB.Save(s).Error
}
