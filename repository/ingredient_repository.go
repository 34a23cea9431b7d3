package repository

import (
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

type IngredientRepository struct{ DB *gorm.DB }

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{DB: db}
}

func (r *IngredientRepository) List(onlyAvailable bool) ([]entity.Ingredient, error) {
	q := r.DB.Order("id")
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	var out []entity.Ingredient
	err := q.Find(&out).Error
	return out, err
}

func (r *IngredientRepository) FindByID(id uint) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	if err := r.DB.First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

// MapByIDs loads a lookup map for the customization resolver. Missing ids
// are simply absent; the resolver degrades instead of failing.
func (r *IngredientRepository) MapByIDs(ids []uint) (map[uint]entity.Ingredient, error) {
	out := make(map[uint]entity.Ingredient, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []entity.Ingredient
	if err := r.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *IngredientRepository) Create(ing *entity.Ingredient) error { return r.DB.Create(ing).Error }
func (r *IngredientRepository) Update(ing *entity.Ingredient) error { return r.DB.Save(ing).Error }

func (r *IngredientRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&entity.MealIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Ingredient{}, id).Error
	})
}
