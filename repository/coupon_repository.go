package repository

import (
	"strings"

	"cooldeal/entity"

	"gorm.io/gorm"
)

type CouponRepository struct{ DB *gorm.DB }

func NewCouponRepository(db *gorm.DB) *CouponRepository { return &CouponRepository{DB: db} }

func (r *CouponRepository) FindByCode(code string) (*entity.Coupon, error) {
	var c entity.Coupon
	if err := r.DB.Where("code = ?", strings.TrimSpace(code)).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) FindByID(id uint) (*entity.Coupon, error) {
	var c entity.Coupon
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) List() ([]entity.Coupon, error) {
	var out []entity.Coupon
	err := r.DB.Order("id DESC").Find(&out).Error
	return out, err
}

func (r *CouponRepository) Create(c *entity.Coupon) error {
	return r.DB.Create(c).Error
}

func (r *CouponRepository) Save(c *entity.Coupon) error {
	return r.DB.Save(c).Error
}

func (r *CouponRepository) CountByCode(code string, exceptID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Coupon{}).Where("code = ? AND id <> ?", code, exceptID).Count(&n).Error
	return n, err
}

// IncrementUse consumes one use unless the coupon is exhausted; 0 rows means it was.
func (r *CouponRepository) IncrementUse(tx *gorm.DB, id uint) (int64, error) {
	res := tx.Model(&entity.Coupon{}).
		Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	return res.RowsAffected, res.Error
}
