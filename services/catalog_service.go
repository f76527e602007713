package services

import (
	"errors"
	"time"

	"cooldeal/entity"
	"cooldeal/pkg/pricing"
	"cooldeal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ShopPageSize    = 12
	SimilarProducts = 4
)

type CatalogService struct {
	DB   *gorm.DB
	Repo *repository.CatalogRepository
	Now  func() time.Time
}

func NewCatalogService(db *gorm.DB, repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{DB: db, Repo: repo, Now: time.Now}
}

// ProductCard is a product with its price as of today.
type ProductCard struct {
	entity.Product
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	OnPromotion  bool            `json:"onPromotion"`
}

func (s *CatalogService) card(p entity.Product) ProductCard {
	now := s.Now()
	return ProductCard{
		Product:      p,
		CurrentPrice: pricing.UnitPrice(&p, now),
		OnPromotion:  pricing.PromotionActive(p.PromoStart, p.PromoEnd, now) && p.PromoPrice.IsPositive(),
	}
}

func (s *CatalogService) cards(ps []entity.Product) []ProductCard {
	out := make([]ProductCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, s.card(p))
	}
	return out
}

type ShopPage struct {
	Items    []ProductCard `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Pages    int           `json:"pages"`
	Category string        `json:"category,omitempty"`
}

// Shop lists active products; an unknown category slug yields an empty page.
func (s *CatalogService) Shop(categorySlug string, page int) (*ShopPage, error) {
	if page <= 0 {
		page = 1
	}
	out := &ShopPage{Items: []ProductCard{}, Page: page, Category: categorySlug}
	var catID *uint
	if categorySlug != "" {
		cat, err := s.Repo.EstablishmentCategoryBySlug(categorySlug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		catID = &cat.ID
	}
	items, total, err := s.Repo.ListProducts(catID, page, ShopPageSize)
	if err != nil {
		return nil, err
	}
	out.Items, out.Total, out.Pages = s.cards(items), total, pages(total, ShopPageSize)
	return out, nil
}

type ProductDetail struct {
	Product ProductCard   `json:"product"`
	Similar []ProductCard `json:"similar"`
}

func (s *CatalogService) Product(slug string) (*ProductDetail, error) {
	p, err := s.Repo.ProductBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductMissing
	}
	if err != nil {
		return nil, err
	}
	similar, err := s.Repo.Similar(p, SimilarProducts)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: s.card(*p), Similar: s.cards(similar)}, nil
}

type CategoryPage struct {
	Kind     string        `json:"kind"` // "product" or "establishment"
	Name     string        `json:"name"`
	Slug     string        `json:"slug"`
	Products []ProductCard `json:"products"`
}

// Category looks the slug up among product categories first, then establishment categories.
func (s *CatalogService) Category(slug string) (*CategoryPage, error) {
	pc, err := s.Repo.ProductCategoryBySlug(slug)
	if err == nil {
		ps, err := s.Repo.ProductsByCategory(pc.ID)
		if err != nil {
			return nil, err
		}
		return &CategoryPage{Kind: "product", Name: pc.Name, Slug: pc.Slug, Products: s.cards(ps)}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ec, err := s.Repo.EstablishmentCategoryBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryMissing
	}
	if err != nil {
		return nil, err
	}
	ps, err := s.Repo.ProductsByEstablishmentCategory(ec.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Kind: "establishment", Name: ec.Name, Slug: ec.Slug, Products: s.cards(ps)}, nil
}

func (s *CatalogService) Categories() ([]entity.EstablishmentCategory, error) {
	return s.Repo.EstablishmentCategories()
}

func (s *CatalogService) SuperDeals(n int) ([]ProductCard, error) {
	ps, err := s.Repo.SuperDeals(n)
	if err != nil {
		return nil, err
	}
	return s.cards(ps), nil
}

// ToggleFavorite adds the product to the user's favorites or removes it; it
// reports whether the product is a favorite afterwards.
func (s *CatalogService) ToggleFavorite(userID, productID uint) (bool, error) {
	if _, err := s.Repo.ActiveProductByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductMissing
		}
		return false, err
	}
	var added bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		f, err := s.Repo.FindFavorite(tx, userID, productID)
		if err == nil {
			return s.Repo.RemoveFavorite(tx, f.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		added = true
		return s.Repo.AddFavorite(tx, &entity.Favorite{UserID: userID, ProductID: productID})
	})
	return added, err
}

func (s *CatalogService) Favorites(userID uint) ([]entity.Favorite, error) {
	return s.Repo.Favorites(userID)
}
