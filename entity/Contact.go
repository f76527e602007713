package entity

import "gorm.io/gorm"

type Contact struct {
	gorm.Model
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type Newsletter struct {
	gorm.Model
	Email string `gorm:"uniqueIndex;not null" json:"email"`
}
