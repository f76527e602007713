package repository

import (
	"errors"
	"time"

	"cooldeal/entity"

	"gorm.io/gorm"
)

type TokenRepository struct{ DB *gorm.DB }

func NewTokenRepository(db *gorm.DB) *TokenRepository { return &TokenRepository{DB: db} }

// Upsert gives the user a fresh token, reusing their existing row if any.
func (r *TokenRepository) Upsert(tx *gorm.DB, userID uint, token string, now time.Time) error {
	var t entity.PasswordResetToken
	err := tx.Where("user_id = ?", userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&entity.PasswordResetToken{UserID: userID, Token: token}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&t).Updates(map[string]any{"token": token, "created_at": now}).Error
}

func (r *TokenRepository) FindByToken(token string) (*entity.PasswordResetToken, error) {
	var t entity.PasswordResetToken
	if err := r.DB.Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) DeleteForUser(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&entity.PasswordResetToken{}).Error
}

func (r *TokenRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.DB.Unscoped().Where("created_at < ?", cutoff).Delete(&entity.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
