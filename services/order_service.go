package services

import (
	"errors"
	"time"

	"cooldeal/entity"
	"cooldeal/repository"

	"gorm.io/gorm"
)

const (
	CustomerOrdersPerPage = 10
	RecentOrders          = 5
)

type OrderService struct {
	DB             *gorm.DB
	Repo           *repository.OrderRepository
	Customers      *repository.CustomerRepository
	Establishments *repository.EstablishmentRepository
	Status         StatusIDs
	Now            func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	customers *repository.CustomerRepository,
	ests *repository.EstablishmentRepository,
	status StatusIDs,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, Customers: customers, Establishments: ests, Status: status, Now: time.Now}
}

func (s *OrderService) customer(userID uint) (*entity.Customer, error) {
	c, err := s.Customers.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoCustomer
	}
	return c, err
}

func (s *OrderService) establishment(userID uint) (*entity.Establishment, error) {
	e, err := s.Establishments.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotSeller
	}
	return e, err
}

// ----- Customer side -----

type OrderPage struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Pages int            `json:"pages"`
	Query string         `json:"q"`
}

func pages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (s *OrderService) ListForCustomer(userID uint, q string, page int) (*OrderPage, error) {
	c, err := s.customer(userID)
	if err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	items, total, err := s.Repo.SearchForCustomer(c.ID, q, page, CustomerOrdersPerPage)
	if err != nil {
		return nil, err
	}
	return &OrderPage{
		Items: items, Total: total, Page: page, Limit: CustomerOrdersPerPage,
		Pages: pages(total, CustomerOrdersPerPage), Query: q,
	}, nil
}

func (s *OrderService) RecentForCustomer(customerID uint) ([]entity.Order, error) {
	return s.Repo.RecentForCustomer(customerID, RecentOrders)
}

// DetailForCustomer only returns the caller's own orders.
func (s *OrderService) DetailForCustomer(userID, orderID uint) (*entity.Order, error) {
	c, err := s.customer(userID)
	if err != nil {
		return nil, err
	}
	o, err := s.Repo.GetOrderForCustomer(c.ID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// ----- Establishment side -----

type SellerOrderPage struct {
	Items []repository.SellerOrderSummary `json:"items"`
	Total int64                           `json:"total"`
	Page  int                             `json:"page"`
	Limit int                             `json:"limit"`
}

// ListForSeller lists orders holding the seller's products; status filters by name.
func (s *OrderService) ListForSeller(userID uint, status string, page, limit int) (*SellerOrderPage, error) {
	est, err := s.establishment(userID)
	if err != nil {
		return nil, err
	}
	var statusID *uint
	if status != "" {
		id, err := s.Repo.GetStatusIDByName(status)
		if err != nil {
			return &SellerOrderPage{Items: []repository.SellerOrderSummary{}, Page: page, Limit: limit}, nil
		}
		statusID = &id
	}
	items, total, err := s.Repo.ListForEstablishment(est.ID, statusID, page, limit)
	if err != nil {
		return nil, err
	}
	return &SellerOrderPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) DetailForSeller(userID, orderID uint) (*entity.Order, error) {
	est, err := s.establishment(userID)
	if err != nil {
		return nil, err
	}
	o, err := s.Repo.GetForEstablishment(est.ID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}
