package services

import (
	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/repository"
)

type IngredientService struct {
	Repo *repository.IngredientRepository
}

func NewIngredientService(repo *repository.IngredientRepository) *IngredientService {
	return &IngredientService{Repo: repo}
}

func (s *IngredientService) List(onlyAvailable bool) ([]entity.Ingredient, error) {
	return s.Repo.List(onlyAvailable)
}

func (s *IngredientService) Get(id uint) (*entity.Ingredient, error) {
	return s.Repo.FindByID(id)
}

func (s *IngredientService) Create(ing *entity.Ingredient) error {
	if err := ing.Name.Validate(); err != nil {
		return err
	}
	return s.Repo.Create(ing)
}

func (s *IngredientService) Update(ing *entity.Ingredient) error {
	if err := ing.Name.Validate(); err != nil {
		return err
	}
	return s.Repo.Update(ing)
}

func (s *IngredientService) Delete(id uint) error {
	return s.Repo.Delete(id)
}
