package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	CustomerID uint     `gorm:"index" json:"customerId"`
	Customer   Customer `json:"-"`

	TransactionID string `gorm:"uniqueIndex;not null" json:"transactionId"`
	PaymentID     string `json:"paymentId"`
	PaymentToken  string `json:"-"`
	PaymentURL    string `json:"paymentUrl"`
	APIResponseID string `json:"apiResponseId"`
	NotifyURL     string `json:"-"`
	ReturnURL     string `json:"-"`

	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalPrice"`

	CouponID *uint   `json:"couponId"`
	Coupon   *Coupon `json:"coupon,omitempty"`

	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`
	PaidAt        *time.Time  `json:"paidAt"`

	Items []CartItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}
