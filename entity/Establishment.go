package entity

import (
	"time"

	"cooldeal/pkg/slugs"

	"gorm.io/gorm"
)

type Establishment struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Cover       string `json:"cover"`

	CategoryID *uint                  `json:"categoryId"`
	Category   *EstablishmentCategory `json:"category,omitempty"`

	ManagerLastName  string `json:"managerLastName"`
	ManagerFirstName string `json:"managerFirstName"`
	City             string `json:"city"`
	Address          string `json:"address"`
	Country          string `json:"country"`
	Website          string `json:"website"`
	Contact1         string `json:"contact1"`
	Contact2         string `json:"contact2"`
	Email            string `json:"email"`
	Status           bool   `json:"status"`
	Slug             string `gorm:"uniqueIndex" json:"slug"`

	Products []Product `json:"-"`
}

func (e *Establishment) BeforeCreate(tx *gorm.DB) error {
	if e.Slug == "" {
		e.Slug = slugs.Make(e.Name, time.Now())
	}
	return nil
}
