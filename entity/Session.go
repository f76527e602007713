package entity

import (
	"time"

	"gorm.io/gorm"
)

// Session is the server side of the visitor cookie; anonymous carts hang off its key.
type Session struct {
	gorm.Model
	Key       string    `gorm:"column:sid;uniqueIndex;size:64;not null" json:"key"`
	UserID    *uint     `json:"userId"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
}
