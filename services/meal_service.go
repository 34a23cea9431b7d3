package services

import (
	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/repository"
)

type MealService struct {
	Repo *repository.MealRepository
}

func NewMealService(repo *repository.MealRepository) *MealService {
	return &MealService{Repo: repo}
}

func (s *MealService) List(categoryID uint, onlyAvailable bool) ([]entity.Meal, error) {
	return s.Repo.List(categoryID, onlyAvailable)
}

func (s *MealService) Get(id uint) (*entity.Meal, error) {
	return s.Repo.FindByID(id)
}

func (s *MealService) Create(meal *entity.Meal) error {
	if err := meal.Name.Validate(); err != nil {
		return err
	}
	return s.Repo.Create(meal)
}

func (s *MealService) Update(meal *entity.Meal) error {
	if err := meal.Name.Validate(); err != nil {
		return err
	}
	return s.Repo.Update(meal)
}

func (s *MealService) Delete(id uint) error {
	return s.Repo.Delete(id)
}

// SetIngredients applies the authoring screen's role assignments. Only
// Default and Extra produce links; NotIncluded rows are simply absent.
func (s *MealService) SetIngredients(mealID uint, links []entity.MealIngredient) error {
	return s.Repo.ReplaceIngredientLinks(mealID, links)
}
