package services

import (
	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/repository"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

func (s *CategoryService) List(onlyActive bool) ([]entity.Category, error) {
	return s.Repo.List(onlyActive)
}

func (s *CategoryService) Get(id uint) (*entity.Category, error) {
	return s.Repo.FindByID(id)
}

func (s *CategoryService) Create(cat *entity.Category) error {
	if err := cat.Name.Validate(); err != nil {
		return err
	}
	return s.Repo.Create(cat)
}

func (s *CategoryService) Update(cat *entity.Category) error {
	if err := cat.Name.Validate(); err != nil {
		return err
	}
	return s.Repo.Update(cat)
}

func (s *CategoryService) Delete(id uint) error {
	return s.Repo.Delete(id)
}
