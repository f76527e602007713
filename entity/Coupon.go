package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Coupon struct {
	gorm.Model
	Label     string          `json:"label"`
	Code      string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Active    bool            `json:"active"`
	ExpiresOn time.Time       `json:"expiresOn"`
	Reduction decimal.Decimal `gorm:"type:decimal(5,4);not null" json:"reduction"` // 0.1 = 10%
	MaxUses   int             `json:"maxUses"`                                    // 0 = unlimited
	UsedCount int             `json:"usedCount"`
	Status    bool            `json:"status"`
}
