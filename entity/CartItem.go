package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is a line that belongs to a cart until checkout, then to an order.
type CartItem struct {
	gorm.Model
	ProductID uint    `json:"productId"`
	Product   Product `json:"product"`

	CartID  *uint `gorm:"index" json:"cartId"`
	OrderID *uint `gorm:"index" json:"orderId"`

	Quantity int `gorm:"not null" json:"quantity"`

	// frozen at checkout
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"unitPrice"`
}
