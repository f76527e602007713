package repository

import (
	"errors"

	"cooldeal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteRepository serves the marketing content, contact messages and newsletter.
type SiteRepository struct{ DB *gorm.DB }

func NewSiteRepository(db *gorm.DB) *SiteRepository { return &SiteRepository{DB: db} }

// active returns up to n rows with status on, oldest first; n <= 0 means all.
func active[T any](db *gorm.DB, n int) ([]T, error) {
	out := make([]T, 0)
	q := db.Where("status = ?", true).Order("id ASC")
	if n > 0 {
		q = q.Limit(n)
	}
	err := q.Find(&out).Error
	return out, err
}

// LatestSiteInfo returns nil when nothing was configured.
func (r *SiteRepository) LatestSiteInfo() (*entity.SiteInfo, error) {
	var s entity.SiteInfo
	err := r.DB.Order("created_at DESC, id DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) Abouts(n int) ([]entity.About, error) { return active[entity.About](r.DB, n) }
func (r *SiteRepository) Banners(n int) ([]entity.Banner, error) {
	return active[entity.Banner](r.DB, n)
}
func (r *SiteRepository) Partners(n int) ([]entity.Partner, error) {
	return active[entity.Partner](r.DB, n)
}
func (r *SiteRepository) Testimonials() ([]entity.Testimonial, error) {
	return active[entity.Testimonial](r.DB, 0)
}
func (r *SiteRepository) WhyChooseUs(n int) ([]entity.WhyChooseUs, error) {
	return active[entity.WhyChooseUs](r.DB, n)
}
func (r *SiteRepository) Galleries(n int) ([]entity.Gallery, error) {
	return active[entity.Gallery](r.DB, n)
}
func (r *SiteRepository) OpeningHours() ([]entity.OpeningHour, error) {
	return active[entity.OpeningHour](r.DB, 0)
}

func (r *SiteRepository) Cities() ([]entity.City, error) {
	out := make([]entity.City, 0)
	err := r.DB.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *SiteRepository) CreateContact(c *entity.Contact) error {
	return r.DB.Create(c).Error
}

func (r *SiteRepository) Contacts() ([]entity.Contact, error) {
	var out []entity.Contact
	err := r.DB.Order("id DESC").Find(&out).Error
	return out, err
}

// Subscribe stores the address once; repeats are ignored.
func (r *SiteRepository) Subscribe(email string) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&entity.Newsletter{Email: email}).Error
}

func (r *SiteRepository) Subscribers() ([]entity.Newsletter, error) {
	var out []entity.Newsletter
	err := r.DB.Order("id DESC").Find(&out).Error
	return out, err
}
