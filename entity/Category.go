package entity

import (
	"time"

	"cooldeal/pkg/slugs"

	"gorm.io/gorm"
)

// EstablishmentCategory groups establishments (restaurants, spas, hotels...).
type EstablishmentCategory struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	Status      bool   `json:"status"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`

	ProductCategories []ProductCategory `json:"productCategories,omitempty"`
}

func (c *EstablishmentCategory) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slugs.Make(c.Name, time.Now())
	}
	return nil
}

type ProductCategory struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	Status      bool   `json:"status"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`

	EstablishmentCategoryID *uint                  `json:"establishmentCategoryId"`
	EstablishmentCategory   *EstablishmentCategory `json:"-"`
}

func (c *ProductCategory) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slugs.Make(c.Name, time.Now())
	}
	return nil
}
