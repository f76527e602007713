package services

import (
	"errors"
	"strings"
	"time"

	"cooldeal/entity"
	"cooldeal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CouponService struct {
	Repo *repository.CouponRepository
	Log  *zap.Logger
}

func NewCouponService(repo *repository.CouponRepository, log *zap.Logger) *CouponService {
	return &CouponService{Repo: repo, Log: log}
}

type CouponIn struct {
	Code      string    `json:"code" binding:"required"`
	Label     string    `json:"label"`
	Reduction string    `json:"reduction" binding:"required"` // fraction, "0.15" = 15%
	ExpiresOn time.Time `json:"expiresOn" binding:"required"`
	MaxUses   int       `json:"maxUses" binding:"min=0"`
	Active    *bool     `json:"active"`
}

func (in *CouponIn) apply(c *entity.Coupon) error {
	red, err := decimal.NewFromString(in.Reduction)
	if err != nil || red.IsNegative() || red.GreaterThan(decimal.NewFromInt(1)) {
		return ErrCouponInvalid
	}
	c.Code = strings.TrimSpace(in.Code)
	c.Label = in.Label
	c.Reduction = red
	c.ExpiresOn = in.ExpiresOn
	c.MaxUses = in.MaxUses
	c.Status = true
	if in.Active != nil {
		c.Active = *in.Active
	}
	return nil
}

func (s *CouponService) List() ([]entity.Coupon, error) { return s.Repo.List() }

func (s *CouponService) Create(in *CouponIn) (*entity.Coupon, error) {
	c := entity.Coupon{Active: true}
	if err := in.apply(&c); err != nil {
		return nil, err
	}
	if n, err := s.Repo.CountByCode(c.Code, 0); err != nil {
		return nil, err
	} else if n > 0 {
		return nil, ErrCouponCodeTaken
	}
	if err := s.Repo.Create(&c); err != nil {
		return nil, err
	}
	s.Log.Info("coupon created", zap.String("code", c.Code), zap.String("reduction", c.Reduction.String()))
	return &c, nil
}

func (s *CouponService) Update(id uint, in *CouponIn) (*entity.Coupon, error) {
	c, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponInvalid
	}
	if err != nil {
		return nil, err
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if n, err := s.Repo.CountByCode(c.Code, c.ID); err != nil {
		return nil, err
	} else if n > 0 {
		return nil, ErrCouponCodeTaken
	}
	if err := s.Repo.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}
