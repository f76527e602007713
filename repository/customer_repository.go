package repository

import (
	"cooldeal/entity"

	"gorm.io/gorm"
)

type CustomerRepository struct{ DB *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{DB: db} }

func (r *CustomerRepository) Create(tx *gorm.DB, c *entity.Customer) error {
	return tx.Create(c).Error
}

func (r *CustomerRepository) FindByUserID(userID uint) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.DB.Preload("User").Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Save updates the customer columns only; the embedded user is left alone.
func (r *CustomerRepository) Save(tx *gorm.DB, c *entity.Customer) error {
	return tx.Model(&entity.Customer{}).Where("id = ?", c.ID).Updates(map[string]any{
		"address":  c.Address,
		"photo":    c.Photo,
		"contact1": c.Contact1,
		"contact2": c.Contact2,
		"city":     c.City,
		"country":  c.Country,
	}).Error
}
