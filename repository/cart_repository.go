package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the user's cart, or an empty one without error so
// the client can always render something.
func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Ingredients").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID}, nil
	}
	return &c, err
}

func (r *CartRepository) GetOrCreateCart(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID}
		if err := r.DB.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

// AddItem always creates a fresh line. Identical customizations are not
// merged; edit and remove stay unambiguous by line id.
func (r *CartRepository) AddItem(tx *gorm.DB, cartID uint, row *entity.CartItem) error {
	row.CartID = cartID
	return tx.Create(row).Error
}

// GetItem fetches a line only if it belongs to the user's cart.
func (r *CartRepository) GetItem(userID, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.DB.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemID, userID).
		Preload("Ingredients").
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// UpdateQty rewrites qty and total on the line. An unknown line id affects
// zero rows and is not an error.
func (r *CartRepository) UpdateQty(tx *gorm.DB, userID, itemID uint, qty int) error {
	return tx.Exec(`
		UPDATE cart_items
		   SET qty = ?, total = unit_price * ?
		 WHERE id = ?
		   AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)
	`, qty, qty, itemID, userID).Error
}

// ReplaceIngredients swaps the modifier rows wholesale and stores the
// recomputed prices.
func (r *CartRepository) ReplaceIngredients(tx *gorm.DB, item *entity.CartItem, rows []entity.CartItemIngredient, unitPrice int64) error {
	if err := tx.Where("cart_item_id = ?", item.ID).
		Delete(&entity.CartItemIngredient{}).Error; err != nil {
		return err
	}
	for i := range rows {
		rows[i].CartItemID = item.ID
		if err := tx.Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return tx.Model(&entity.CartItem{}).Where("id = ?", item.ID).
		Updates(map[string]any{
			"unit_price": unitPrice,
			"total":      unitPrice * int64(item.Qty),
		}).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) error {
	return tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemID, userID).
		Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	var c entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	var itemIDs []uint
	if err := tx.Model(&entity.CartItem{}).Where("cart_id = ?", c.ID).
		Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) > 0 {
		if err := tx.Where("cart_item_id IN ?", itemIDs).
			Delete(&entity.CartItemIngredient{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error
}
