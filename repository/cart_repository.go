package repository

import (
	"errors"

	"cooldeal/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func withCartDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product").
		Preload("Coupon")
}

func (r *CartRepository) FindByID(tx *gorm.DB, id uint) (*entity.Cart, error) {
	var c entity.Cart
	if err := withCartDetails(tx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindForCustomer returns the customer's most recent cart.
func (r *CartRepository) FindForCustomer(tx *gorm.DB, customerID uint) (*entity.Cart, error) {
	var c entity.Cart
	if err := withCartDetails(tx).
		Where("customer_id = ?", customerID).
		Order("id DESC").First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAnonymous returns the session's cart that no customer has claimed yet.
func (r *CartRepository) FindAnonymous(tx *gorm.DB, sessionKey string) (*entity.Cart, error) {
	var c entity.Cart
	if err := withCartDetails(tx).
		Where("session_key = ? AND customer_id IS NULL", sessionKey).
		Order("id DESC").First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) Create(tx *gorm.DB, c *entity.Cart) error {
	return tx.Create(c).Error
}

func (r *CartRepository) Claim(tx *gorm.DB, cartID, customerID uint, sessionKey string) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		Updates(map[string]any{"customer_id": customerID, "session_key": sessionKey}).Error
}

// UpsertItem adds qty to the product's line, creating it when absent.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID, productID uint, qty int) (*entity.CartItem, error) {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&exist).Error
	if err == nil {
		exist.Quantity += qty
		if err := tx.Model(&exist).Update("quantity", exist.Quantity).Error; err != nil {
			return nil, err
		}
		return &exist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := entity.CartItem{CartID: &cartID, ProductID: productID, Quantity: qty}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CartRepository) FindItemByProduct(tx *gorm.DB, cartID, productID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := tx.Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) SetQty(tx *gorm.DB, itemID uint, qty int) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", itemID).Update("quantity", qty).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, cartID, itemID uint) (int64, error) {
	res := tx.Unscoped().
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *CartRepository) AttachCoupon(tx *gorm.DB, cartID uint, couponID *uint) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).Update("coupon_id", couponID).Error
}

// MoveToOrder re-parents a line from its cart to the order and freezes its unit price.
func (r *CartRepository) MoveToOrder(tx *gorm.DB, itemID, orderID uint, unit decimal.Decimal) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", itemID).Updates(map[string]any{
		"cart_id":    nil,
		"order_id":   orderID,
		"unit_price": unit,
	}).Error
}

// Delete removes the cart row itself; lines still attached are removed with it.
func (r *CartRepository) Delete(tx *gorm.DB, cartID uint) error {
	if err := tx.Unscoped().Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.Cart{}, cartID).Error
}
