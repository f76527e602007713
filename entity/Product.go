package entity

import (
	"time"

	"cooldeal/pkg/slugs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name            string `gorm:"not null" json:"name"`
	Description     string `json:"description"`
	DealDescription string `json:"dealDescription"`

	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	PromoPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"promoPrice"`
	Quantity   *int            `json:"quantity"`
	PromoStart *time.Time      `json:"promoStart"`
	PromoEnd   *time.Time      `json:"promoEnd"`

	// always copied from the establishment
	EstablishmentCategoryID *uint                  `json:"establishmentCategoryId"`
	EstablishmentCategory   *EstablishmentCategory `json:"-"`

	CategoryID *uint            `json:"categoryId"`
	Category   *ProductCategory `json:"category,omitempty"`

	EstablishmentID uint           `gorm:"index" json:"establishmentId"`
	Establishment   *Establishment `json:"establishment,omitempty"`

	Image     string `json:"image"`
	Image2    string `json:"image2"`
	Image3    string `json:"image3"`
	SuperDeal bool   `json:"superDeal"`
	Status    bool   `json:"status"`
	Slug      string `gorm:"uniqueIndex" json:"slug"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slugs.Make(p.Name, time.Now())
	}
	return nil
}
