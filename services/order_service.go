package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/enums/orderstatus"
	"github.com/amrkal/moringa-backend/repository"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// OrderService is the read/back-office side of orders; creation lives in
// CheckoutService.
type OrderService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo}
}

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	Order entity.Order       `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}

type AdminOrderListOut struct {
	Items []repository.AdminOrderSummary `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func (s *OrderService) ListAll(status orderstatus.Status, page, limit int) (*AdminOrderListOut, error) {
	items, total, err := s.Repo.ListOrders(status, page, limit)
	if err != nil {
		return nil, err
	}
	return &AdminOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) DetailForAdmin(orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}

// UpdateStatus moves the order along the lifecycle with a guarded write, so
// two admins racing on the same order cannot double-apply a transition.
func (s *OrderService) UpdateStatus(orderID uint, to orderstatus.Status) error {
	if !to.Valid() {
		return ErrInvalidTransition
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return err
		}
		if !o.Status.CanTransition(to) {
			return ErrInvalidTransition
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
}
