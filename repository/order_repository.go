package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/enums/orderstatus"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) CreateOrderItemIngredient(tx *gorm.DB, row *entity.OrderItemIngredient) error {
	return tx.Create(row).Error
}

func (r *OrderRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).
		Preload("Ingredients").
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) GetPaymentByOrder(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *OrderRepository) SavePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Save(p).Error
}

type OrderSummary struct {
	ID          uint               `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	OrderType   string             `json:"orderType"`
	Total       int64              `json:"total"`
	Status      orderstatus.Status `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, order_number, order_type, total, status, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

type AdminOrderSummary struct {
	ID           uint               `json:"id"`
	OrderNumber  string             `json:"orderNumber"`
	UserID       uint               `json:"userId"`
	CustomerName string             `json:"customerName"`
	OrderType    string             `json:"orderType"`
	Total        int64              `json:"total"`
	Status       orderstatus.Status `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(status orderstatus.Status, page, limit int) ([]AdminOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Table("orders AS o").Where("o.deleted_at IS NULL")
	if status != "" {
		dbCount = dbCount.Where("o.status = ?", status)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID          uint
		OrderNumber string
		UserID      uint
		OrderType   string
		Total       int64
		Status      orderstatus.Status
		CreatedAt   time.Time
		FirstName   string
		LastName    string
	}
	db := r.DB.Table("orders AS o").
		Select("o.id, o.order_number, o.user_id, o.order_type, o.total, o.status, o.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.deleted_at IS NULL")
	if status != "" {
		db = db.Where("o.status = ?", status)
	}
	if err := db.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]AdminOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, AdminOrderSummary{
			ID: row.ID, OrderNumber: row.OrderNumber, UserID: row.UserID,
			CustomerName: row.FirstName + " " + row.LastName,
			OrderType:    row.OrderType, Total: row.Total,
			Status: row.Status, CreatedAt: row.CreatedAt,
		})
	}
	return out, total, nil
}

// UpdateStatusGuard moves the order only if it is still in the expected
// state; the affected-row count exposes lost races to the caller.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to orderstatus.Status) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}
