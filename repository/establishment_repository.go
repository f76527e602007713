package repository

import (
	"cooldeal/entity"

	"gorm.io/gorm"
)

type EstablishmentRepository struct{ DB *gorm.DB }

func NewEstablishmentRepository(db *gorm.DB) *EstablishmentRepository {
	return &EstablishmentRepository{DB: db}
}

func (r *EstablishmentRepository) GetByUserID(userID uint) (*entity.Establishment, error) {
	var e entity.Establishment
	if err := r.DB.Preload("Category").Where("user_id = ?", userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// OwnerUserIDs maps establishments to the users who run them.
func (r *EstablishmentRepository) OwnerUserIDs(estIDs []uint) ([]uint, error) {
	var out []uint
	if len(estIDs) == 0 {
		return out, nil
	}
	err := r.DB.Model(&entity.Establishment{}).Where("id IN ?", estIDs).Pluck("user_id", &out).Error
	return out, err
}

// Save writes the establishment and copies the manager's names and email onto its user.
func (r *EstablishmentRepository) Save(tx *gorm.DB, e *entity.Establishment) error {
	if err := tx.Omit("User", "Category").Save(e).Error; err != nil {
		return err
	}
	return tx.Model(&entity.User{}).Where("id = ?", e.UserID).Updates(map[string]any{
		"last_name":  e.ManagerLastName,
		"first_name": e.ManagerFirstName,
		"email":      e.Email,
	}).Error
}

func (r *EstablishmentRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Establishment{}).Count(&n).Error
	return n, err
}

// ---------------- Products ----------------

func (r *EstablishmentRepository) ListProducts(estID uint) ([]entity.Product, error) {
	var out []entity.Product
	err := r.DB.Preload("Category").
		Where("establishment_id = ?", estID).
		Order("id DESC").Find(&out).Error
	return out, err
}

func (r *EstablishmentRepository) CountProducts(estID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Product{}).Where("establishment_id = ?", estID).Count(&n).Error
	return n, err
}

func (r *EstablishmentRepository) GetProduct(estID, productID uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.Preload("Category").
		Where("id = ? AND establishment_id = ?", productID, estID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *EstablishmentRepository) SaveProduct(tx *gorm.DB, p *entity.Product) error {
	return tx.Omit("Establishment", "Category", "EstablishmentCategory").Save(p).Error
}

// DeleteProduct soft-deletes the product and drops it from open carts.
func (r *EstablishmentRepository) DeleteProduct(tx *gorm.DB, estID, productID uint) (int64, error) {
	res := tx.Where("id = ? AND establishment_id = ?", productID, estID).Delete(&entity.Product{})
	if res.Error != nil || res.RowsAffected == 0 {
		return res.RowsAffected, res.Error
	}
	if err := tx.Unscoped().
		Where("product_id = ? AND order_id IS NULL", productID).
		Delete(&entity.CartItem{}).Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// DecrementStock takes qty from a product with a tracked stock; 0 rows means not enough left.
func (r *EstablishmentRepository) DecrementStock(tx *gorm.DB, productID uint, qty int) (int64, error) {
	res := tx.Model(&entity.Product{}).
		Where("id = ? AND quantity IS NOT NULL AND quantity >= ?", productID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}
