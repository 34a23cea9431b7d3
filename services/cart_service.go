package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/repository"
)

var ErrMealUnavailable = errors.New("meal unavailable")

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MealRepo *repository.MealRepository
	IngRepo  *repository.IngredientRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MealRepository, ir *repository.IngredientRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MealRepo: mr, IngRepo: ir}
}

type AddToCartIn struct {
	MealID              uint   `json:"mealId" binding:"required"`
	Qty                 int    `json:"qty"`
	Note                string `json:"note"`
	SelectedIngredients []uint `json:"selectedIngredients"`
	RemovedIngredients  []uint `json:"removedIngredients"`
}

type CartOut struct {
	Cart      *entity.Cart `json:"cart"`
	Subtotal  int64        `json:"subtotal"`
	ItemCount int          `json:"itemCount"`
}

func (s *CartService) Get(userID uint) (*CartOut, error) {
	c, err := s.CartRepo.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}
	out := &CartOut{Cart: c}
	for _, it := range c.Items {
		out.Subtotal += it.Total
		out.ItemCount += it.Qty
	}
	return out, nil
}

// Add appends a new line. Every add creates a distinct line item, even when
// the customization matches an existing one.
func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	if in.Qty < 1 {
		in.Qty = 1
	}

	m, err := s.MealRepo.FindByID(in.MealID)
	if err != nil {
		return err
	}
	if !m.Available {
		return ErrMealUnavailable
	}

	catalog, err := s.IngRepo.MapByIDs(CatalogIngredientIDs(m))
	if err != nil {
		return err
	}
	custom := ResolveCustomization(m, catalog, in.SelectedIngredients, in.RemovedIngredients)

	c, err := s.CartRepo.GetOrCreateCart(userID)
	if err != nil {
		return err
	}

	line := &entity.CartItem{
		MealID: m.ID,
		// coerced to a plain string here, once, at cart entry
		MealName:    m.Name.Resolve(),
		Qty:         in.Qty,
		UnitPrice:   custom.UnitPrice,
		Total:       custom.UnitPrice * int64(in.Qty),
		Note:        in.Note,
		Ingredients: custom.Rows,
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.AddItem(tx, c.ID, line)
	})
}

// UpdateQty clamps to a minimum of 1; dropping a line is an explicit remove,
// never a side effect of a zero quantity. Unknown ids are a no-op.
func (s *CartService) UpdateQty(userID, itemID uint, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpdateQty(tx, userID, itemID, qty)
	})
}

// UpdateIngredients replaces the line's modifier lists wholesale and
// recomputes its price. An unknown line id is a no-op.
func (s *CartService) UpdateIngredients(userID, itemID uint, selected, removed []uint) error {
	item, err := s.CartRepo.GetItem(userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	m, err := s.MealRepo.FindByID(item.MealID)
	if err != nil {
		return err
	}
	catalog, err := s.IngRepo.MapByIDs(CatalogIngredientIDs(m))
	if err != nil {
		return err
	}
	custom := ResolveCustomization(m, catalog, selected, removed)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ReplaceIngredients(tx, item, custom.Rows, custom.UnitPrice)
	})
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, userID, itemID)
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearCart(tx, userID)
	})
}
