package services

import (
	"errors"

	"cooldeal/entity"
	"cooldeal/repository"

	"gorm.io/gorm"
)

// CustomerService backs the customer area: profile, settings and wishlist.
type CustomerService struct {
	DB        *gorm.DB
	Customers *repository.CustomerRepository
	Users     *repository.UserRepository
	Orders    *OrderService
	Catalog   *CatalogService
}

func NewCustomerService(
	db *gorm.DB,
	customers *repository.CustomerRepository,
	users *repository.UserRepository,
	orders *OrderService,
	catalog *CatalogService,
) *CustomerService {
	return &CustomerService{DB: db, Customers: customers, Users: users, Orders: orders, Catalog: catalog}
}

func (s *CustomerService) customer(userID uint) (*entity.Customer, error) {
	c, err := s.Customers.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoCustomer
	}
	return c, err
}

type Profile struct {
	Customer *entity.Customer `json:"customer"`
	Orders   []entity.Order   `json:"orders"`
}

func (s *CustomerService) Profile(userID uint) (*Profile, error) {
	c, err := s.customer(userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders.RecentForCustomer(c.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{Customer: c, Orders: orders}, nil
}

func (s *CustomerService) Wishlist(userID uint) ([]entity.Favorite, error) {
	if _, err := s.customer(userID); err != nil {
		return nil, err
	}
	return s.Catalog.Favorites(userID)
}

type SettingsIn struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Contact1  string `form:"contact_1" json:"contact_1"`
	Contact2  string `form:"contact_2" json:"contact_2"`
	City      string `form:"ville" json:"ville"`
	Address   string `form:"adresse" json:"adresse"`
	Country   string `form:"pays" json:"pays"`
	Photo     string `form:"-" json:"-"`
}

// UpdateSettings changes the names on the user and the rest on the customer;
// empty fields keep their current value.
func (s *CustomerService) UpdateSettings(userID uint, in *SettingsIn) (*entity.Customer, error) {
	c, err := s.customer(userID)
	if err != nil {
		return nil, err
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.User.FirstName, in.FirstName)
	set(&c.User.LastName, in.LastName)
	set(&c.Contact1, in.Contact1)
	set(&c.Contact2, in.Contact2)
	set(&c.City, in.City)
	set(&c.Address, in.Address)
	set(&c.Country, in.Country)
	set(&c.Photo, in.Photo)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Users.Update(tx, userID, map[string]any{
			"first_name": c.User.FirstName,
			"last_name":  c.User.LastName,
		}); err != nil {
			return err
		}
		return s.Customers.Save(tx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
