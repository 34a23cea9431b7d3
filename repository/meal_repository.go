package repository

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

type MealRepository struct{ DB *gorm.DB }

func NewMealRepository(db *gorm.DB) *MealRepository { return &MealRepository{DB: db} }

func (r *MealRepository) FindByID(id uint) (*entity.Meal, error) {
	var m entity.Meal
	err := r.DB.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("meal_ingredients.sort_order")
		}).
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MealRepository) List(categoryID uint, onlyAvailable bool) ([]entity.Meal, error) {
	q := r.DB.Preload("Ingredients")
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	var out []entity.Meal
	err := q.Order("id").Find(&out).Error
	return out, err
}

func (r *MealRepository) Create(m *entity.Meal) error { return r.DB.Create(m).Error }
func (r *MealRepository) Update(m *entity.Meal) error { return r.DB.Save(m).Error }

func (r *MealRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", id).Delete(&entity.MealIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Meal{}, id).Error
	})
}

// ReplaceIngredientLinks rewrites the meal's ingredient links from the
// authoring screen in one shot.
func (r *MealRepository) ReplaceIngredientLinks(mealID uint, links []entity.MealIngredient) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", mealID).Delete(&entity.MealIngredient{}).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].ID = 0
			links[i].MealID = mealID
			if err := tx.Create(&links[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
