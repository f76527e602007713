package repository

import (
	"cooldeal/entity"

	"gorm.io/gorm"
)

// CatalogRepository reads the public side of products and categories.
type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

func (r *CatalogRepository) activeProducts() *gorm.DB {
	return r.DB.Model(&entity.Product{}).Where("products.status = ?", true)
}

// ListProducts pages through active products, optionally limited to one establishment category.
func (r *CatalogRepository) ListProducts(estCategoryID *uint, page, limit int) ([]entity.Product, int64, error) {
	q := r.activeProducts()
	if estCategoryID != nil {
		q = q.Where("products.establishment_category_id = ?", *estCategoryID)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Product
	err := q.Session(&gorm.Session{}).
		Preload("Establishment").
		Order("products.created_at DESC, products.id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

func (r *CatalogRepository) ProductBySlug(slug string) (*entity.Product, error) {
	var p entity.Product
	if err := r.activeProducts().
		Preload("Establishment").Preload("Category").
		Where("products.slug = ?", slug).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) ActiveProductByID(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.activeProducts().Where("products.id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Similar returns other active products of the same product category.
func (r *CatalogRepository) Similar(p *entity.Product, n int) ([]entity.Product, error) {
	out := make([]entity.Product, 0)
	if p.CategoryID == nil {
		return out, nil
	}
	err := r.activeProducts().
		Where("products.category_id = ? AND products.id <> ?", *p.CategoryID, p.ID).
		Order("products.id DESC").Limit(n).
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) SuperDeals(n int) ([]entity.Product, error) {
	var out []entity.Product
	err := r.activeProducts().Preload("Establishment").
		Where("products.super_deal = ?", true).
		Order("products.id DESC").Limit(n).
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) ProductsByCategory(categoryID uint) ([]entity.Product, error) {
	var out []entity.Product
	err := r.activeProducts().
		Where("products.category_id = ?", categoryID).
		Order("products.id DESC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) ProductsByEstablishmentCategory(catID uint) ([]entity.Product, error) {
	var out []entity.Product
	err := r.activeProducts().
		Where("products.establishment_category_id = ?", catID).
		Order("products.id DESC").Find(&out).Error
	return out, err
}

// ---------------- Categories ----------------

func (r *CatalogRepository) EstablishmentCategoryBySlug(slug string) (*entity.EstablishmentCategory, error) {
	var c entity.EstablishmentCategory
	if err := r.DB.Where("slug = ? AND status = ?", slug, true).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) ProductCategoryBySlug(slug string) (*entity.ProductCategory, error) {
	var c entity.ProductCategory
	if err := r.DB.Where("slug = ? AND status = ?", slug, true).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) EstablishmentCategories() ([]entity.EstablishmentCategory, error) {
	var out []entity.EstablishmentCategory
	err := r.DB.Where("status = ?", true).
		Preload("ProductCategories", "status = ?", true).
		Order("name ASC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) CreateEstablishmentCategory(c *entity.EstablishmentCategory) error {
	return r.DB.Create(c).Error
}

func (r *CatalogRepository) CreateProductCategory(c *entity.ProductCategory) error {
	return r.DB.Create(c).Error
}

func (r *CatalogRepository) CountProducts() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Product{}).Count(&n).Error
	return n, err
}

// ---------------- Favorites ----------------

func (r *CatalogRepository) FindFavorite(tx *gorm.DB, userID, productID uint) (*entity.Favorite, error) {
	var f entity.Favorite
	if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *CatalogRepository) AddFavorite(tx *gorm.DB, f *entity.Favorite) error {
	return tx.Create(f).Error
}

func (r *CatalogRepository) RemoveFavorite(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Favorite{}, id).Error
}

func (r *CatalogRepository) Favorites(userID uint) ([]entity.Favorite, error) {
	var out []entity.Favorite
	err := r.DB.Preload("Product").
		Where("user_id = ?", userID).
		Order("id DESC").Find(&out).Error
	return out, err
}
