package repository

import (
	"time"

	"cooldeal/entity"

	"gorm.io/gorm"
)

type SessionRepository struct{ DB *gorm.DB }

func NewSessionRepository(db *gorm.DB) *SessionRepository { return &SessionRepository{DB: db} }

func (r *SessionRepository) FindValid(key string, now time.Time) (*entity.Session, error) {
	var s entity.Session
	if err := r.DB.Where("sid = ? AND expires_at > ?", key, now).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Create(s *entity.Session) error {
	return r.DB.Create(s).Error
}

func (r *SessionRepository) AttachUser(key string, userID *uint) error {
	return r.DB.Model(&entity.Session{}).Where("sid = ?", key).Update("user_id", userID).Error
}

// DeleteExpired drops expired sessions and the anonymous carts left on them.
func (r *SessionRepository) DeleteExpired(now time.Time) (int64, error) {
	var n int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&entity.Session{}).Select("sid").Where("expires_at <= ?", now)
		var carts []uint
		if err := tx.Model(&entity.Cart{}).
			Where("customer_id IS NULL AND session_key IN (?)", expired).
			Pluck("id", &carts).Error; err != nil {
			return err
		}
		if len(carts) > 0 {
			if err := tx.Unscoped().Where("cart_id IN ? AND order_id IS NULL", carts).Delete(&entity.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", carts).Delete(&entity.Cart{}).Error; err != nil {
				return err
			}
		}
		res := tx.Unscoped().Where("expires_at <= ?", now).Delete(&entity.Session{})
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}
