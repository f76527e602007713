package entity

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"user"`

	Address  string `json:"address"`
	Photo    string `json:"photo"`
	Contact1 string `json:"contact1"`
	Contact2 string `json:"contact2"`
	City     string `json:"city"`
	Country  string `json:"country"`

	Orders []Order `json:"-"`
}
