package services

import (
	"errors"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/enums/orderstatus"
	"github.com/amrkal/moringa-backend/repository"
)

var (
	ErrBadRating        = errors.New("rating must be 1-5")
	ErrOrderNotReviewed = errors.New("order not completed yet")
	ErrAlreadyReviewed  = errors.New("order already reviewed")
)

type ReviewService struct {
	Repo      *repository.ReviewRepository
	OrderRepo *repository.OrderRepository
}

func NewReviewService(repo *repository.ReviewRepository, orderRepo *repository.OrderRepository) *ReviewService {
	return &ReviewService{Repo: repo, OrderRepo: orderRepo}
}

func (s *ReviewService) Create(userID, orderID uint, rating int, comment string) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrBadRating
	}

	o, err := s.OrderRepo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != orderstatus.Completed {
		return nil, ErrOrderNotReviewed
	}

	exists, err := s.Repo.ExistsForOrder(userID, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rv := &entity.Review{Rating: rating, Comment: comment, UserID: userID, OrderID: orderID}
	if err := s.Repo.Create(rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) List(limit int) ([]entity.Review, error) {
	return s.Repo.List(limit)
}

func (s *ReviewService) Delete(id uint) error {
	return s.Repo.Delete(id)
}
