package entity

import (
	"gorm.io/gorm"
)

const (
	OrderPending   = "Pending"
	OrderPaid      = "Paid"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

type OrderStatus struct {
	gorm.Model
	StatusName string `gorm:"uniqueIndex" json:"statusName"`

	Orders []Order `json:"-"`
}
