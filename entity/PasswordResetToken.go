package entity

import (
	"time"

	"gorm.io/gorm"
)

const ResetTokenTTL = time.Hour

type PasswordResetToken struct {
	gorm.Model
	UserID uint   `gorm:"index" json:"userId"`
	User   User   `json:"-"`
	Token  string `gorm:"uniqueIndex;not null" json:"-"`
}

func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return now.Sub(t.CreatedAt) < ResetTokenTTL
}
