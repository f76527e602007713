package entity

import (
	"gorm.io/gorm"
)

type Cart struct {
	gorm.Model
	SessionKey string    `gorm:"index" json:"sessionKey"`
	CustomerID *uint     `gorm:"index" json:"customerId"`
	Customer   *Customer `json:"-"`

	CouponID *uint   `json:"couponId"`
	Coupon   *Coupon `json:"coupon,omitempty"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:SET NULL;" json:"items"`
}
