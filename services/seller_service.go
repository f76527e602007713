package services

import (
	"errors"
	"time"

	"cooldeal/entity"
	"cooldeal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SellerService struct {
	DB     *gorm.DB
	Repo   *repository.EstablishmentRepository
	Orders *repository.OrderRepository
	Status StatusIDs
}

func NewSellerService(db *gorm.DB, repo *repository.EstablishmentRepository, orders *repository.OrderRepository, status StatusIDs) *SellerService {
	return &SellerService{DB: db, Repo: repo, Orders: orders, Status: status}
}

func (s *SellerService) Establishment(userID uint) (*entity.Establishment, error) {
	e, err := s.Repo.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotSeller
	}
	return e, err
}

// IsSeller reports whether the user runs an establishment.
func (s *SellerService) IsSeller(userID uint) (bool, error) {
	_, err := s.Establishment(userID)
	if errors.Is(err, ErrNotSeller) {
		return false, nil
	}
	return err == nil, err
}

type Dashboard struct {
	Establishment *entity.Establishment `json:"establishment"`
	Products      int64                 `json:"products"`
	Orders        int64                 `json:"orders"`
	ItemsSold     int                   `json:"itemsSold"`
	Revenue       decimal.Decimal       `json:"revenue"`
}

// Dashboard counts paid and delivered lines only for sales and revenue.
func (s *SellerService) Dashboard(userID uint) (*Dashboard, error) {
	est, err := s.Establishment(userID)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{Establishment: est, Revenue: decimal.Zero}
	if d.Products, err = s.Repo.CountProducts(est.ID); err != nil {
		return nil, err
	}
	if d.Orders, err = s.Orders.CountForEstablishment(est.ID); err != nil {
		return nil, err
	}
	lines, err := s.Orders.SoldLines(est.ID, []uint{s.Status.Paid, s.Status.Delivered})
	if err != nil {
		return nil, err
	}
	for _, it := range lines {
		d.ItemsSold += it.Quantity
		d.Revenue = d.Revenue.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	d.Revenue = d.Revenue.Round(2)
	return d, nil
}

// ----- Products -----

type ProductIn struct {
	Name            string     `form:"nom" json:"nom" binding:"required"`
	Description     string     `form:"description" json:"description"`
	DealDescription string     `form:"description_deal" json:"description_deal"`
	Price           string     `form:"prix" json:"prix" binding:"required"`
	PromoPrice      string     `form:"prix_promotionnel" json:"prix_promotionnel"`
	Quantity        *int       `form:"quantite" json:"quantite"`
	PromoStart      *time.Time `form:"date_debut_promo" json:"date_debut_promo" time_format:"2006-01-02"`
	PromoEnd        *time.Time `form:"date_fin_promo" json:"date_fin_promo" time_format:"2006-01-02"`
	CategoryID      *uint      `form:"categorie" json:"categorie"`
	SuperDeal       bool       `form:"super_deal" json:"super_deal"`
	Status          *bool      `form:"status" json:"status"`

	Image  string `form:"-" json:"-"`
	Image2 string `form:"-" json:"-"`
	Image3 string `form:"-" json:"-"`
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d.Round(2), nil
}

func (s *SellerService) apply(p *entity.Product, est *entity.Establishment, in *ProductIn) error {
	price, err := parseMoney(in.Price)
	if err != nil {
		return err
	}
	promo, err := parseMoney(in.PromoPrice)
	if err != nil {
		return err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.DealDescription = in.DealDescription
	p.Price = price
	p.PromoPrice = promo
	p.Quantity = in.Quantity
	p.PromoStart = in.PromoStart
	p.PromoEnd = in.PromoEnd
	p.CategoryID = in.CategoryID
	p.SuperDeal = in.SuperDeal
	p.EstablishmentID = est.ID
	p.EstablishmentCategoryID = est.CategoryID
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Image != "" {
		p.Image = in.Image
	}
	if in.Image2 != "" {
		p.Image2 = in.Image2
	}
	if in.Image3 != "" {
		p.Image3 = in.Image3
	}
	return nil
}

func (s *SellerService) Products(userID uint) ([]entity.Product, error) {
	est, err := s.Establishment(userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListProducts(est.ID)
}

func (s *SellerService) Product(userID, productID uint) (*entity.Product, error) {
	est, err := s.Establishment(userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetProduct(est.ID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductMissing
	}
	return p, err
}

func (s *SellerService) CreateProduct(userID uint, in *ProductIn) (*entity.Product, error) {
	est, err := s.Establishment(userID)
	if err != nil {
		return nil, err
	}
	p := entity.Product{Status: true}
	if err := s.apply(&p, est, in); err != nil {
		return nil, err
	}
	if err := s.DB.Transaction(func(tx *gorm.DB) error { return s.Repo.SaveProduct(tx, &p) }); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SellerService) UpdateProduct(userID, productID uint, in *ProductIn) (*entity.Product, error) {
	est, err := s.Establishment(userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetProduct(est.ID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductMissing
	}
	if err != nil {
		return nil, err
	}
	if err := s.apply(p, est, in); err != nil {
		return nil, err
	}
	if err := s.DB.Transaction(func(tx *gorm.DB) error { return s.Repo.SaveProduct(tx, p) }); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SellerService) DeleteProduct(userID, productID uint) error {
	est, err := s.Establishment(userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.DeleteProduct(tx, est.ID, productID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrProductMissing
		}
		return nil
	})
}

// ----- Establishment settings -----

type EstablishmentIn struct {
	Name             string `form:"nom" json:"nom" binding:"required"`
	Description      string `form:"description" json:"description"`
	CategoryID       *uint  `form:"categorie" json:"categorie"`
	ManagerLastName  string `form:"nom_du_responsable" json:"nom_du_responsable"`
	ManagerFirstName string `form:"prenoms_duresponsable" json:"prenoms_duresponsable"`
	City             string `form:"ville" json:"ville"`
	Address          string `form:"adresse" json:"adresse"`
	Country          string `form:"pays" json:"pays"`
	Website          string `form:"site_web" json:"site_web"`
	Contact1         string `form:"contact_1" json:"contact_1"`
	Contact2         string `form:"contact_2" json:"contact_2"`
	Email            string `form:"email" json:"email" binding:"required,email"`

	Logo  string `form:"-" json:"-"`
	Cover string `form:"-" json:"-"`
}

func applyEstablishment(e *entity.Establishment, in *EstablishmentIn) {
	e.Name = in.Name
	e.Description = in.Description
	e.CategoryID = in.CategoryID
	e.ManagerLastName = in.ManagerLastName
	e.ManagerFirstName = in.ManagerFirstName
	e.City = in.City
	e.Address = in.Address
	e.Country = in.Country
	e.Website = in.Website
	e.Contact1 = in.Contact1
	e.Contact2 = in.Contact2
	e.Email = in.Email
	if in.Logo != "" {
		e.Logo = in.Logo
	}
	if in.Cover != "" {
		e.Cover = in.Cover
	}
}

// UpdateEstablishment saves the settings; product categories follow a category change.
func (s *SellerService) UpdateEstablishment(userID uint, in *EstablishmentIn) (*entity.Establishment, error) {
	est, err := s.Establishment(userID)
	if err != nil {
		return nil, err
	}
	applyEstablishment(est, in)
	est.Category = nil
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Save(tx, est); err != nil {
			return err
		}
		return tx.Model(&entity.Product{}).
			Where("establishment_id = ?", est.ID).
			Update("establishment_category_id", est.CategoryID).Error
	})
	if err != nil {
		return nil, err
	}
	return est, nil
}
