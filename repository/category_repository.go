package repository

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

type CategoryRepository struct{ DB *gorm.DB }

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List(onlyActive bool) ([]entity.Category, error) {
	q := r.DB.Order("sort_order, id")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	var out []entity.Category
	err := q.Find(&out).Error
	return out, err
}

func (r *CategoryRepository) FindByID(id uint) (*entity.Category, error) {
	var cat entity.Category
	if err := r.DB.First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *entity.Category) error { return r.DB.Create(cat).Error }
func (r *CategoryRepository) Update(cat *entity.Category) error { return r.DB.Save(cat).Error }
func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Category{}, id).Error
}
