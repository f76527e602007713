package repository

import (
	"strings"
	"time"

	"cooldeal/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// soft-deleted products still show on past orders
func withOrderItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("OrderStatus").
		Preload("Coupon")
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var st entity.OrderStatus
	if err := r.DB.Where("status_name = ?", name).First(&st).Error; err != nil {
		return 0, err
	}
	return st.ID, nil
}

func (r *OrderRepository) CountByTransactionID(tx *gorm.DB, txID string) (int64, error) {
	var n int64
	err := tx.Model(&entity.Order{}).Where("transaction_id = ?", txID).Count(&n).Error
	return n, err
}

func (r *OrderRepository) GetByTransactionID(txID string) (*entity.Order, error) {
	var o entity.Order
	if err := withOrderItems(r.DB).Where("transaction_id = ?", txID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := withOrderItems(r.DB).First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForCustomer(customerID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := withOrderItems(r.DB).
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) RecentForCustomer(customerID uint, n int) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("OrderStatus").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").Limit(n).
		Find(&out).Error
	return out, err
}

// SearchForCustomer filters on transaction id, creation date text or a
// product name on the order, newest first.
func (r *OrderRepository) SearchForCustomer(customerID uint, q string, page, limit int) ([]entity.Order, int64, error) {
	base := r.DB.Model(&entity.Order{}).Where("orders.customer_id = ?", customerID)
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		products := r.DB.Table("cart_items AS ci").
			Select("ci.order_id").
			Joins("JOIN products p ON p.id = ci.product_id").
			Where("LOWER(p.name) LIKE ?", like)
		base = base.Where(
			r.DB.Where("LOWER(orders.transaction_id) LIKE ?", like).
				Or("CAST(orders.created_at AS TEXT) LIKE ?", like).
				Or("orders.id IN (?)", products),
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Order
	err := base.Session(&gorm.Session{}).
		Preload("OrderStatus").
		Order("orders.created_at DESC, orders.id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

func (r *OrderRepository) UpdatePayment(orderID uint, token, url, responseID string) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"payment_token":   token,
		"payment_url":     url,
		"api_response_id": responseID,
	}).Error
}

// UpdateStatusGuard moves the order only if it is still in fromID.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID, fromID, toID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, fromID).
		Update("order_status_id", toID)
	return res.RowsAffected, res.Error
}

// MarkPaid stamps the payment time; an empty paymentID keeps the stored one.
func (r *OrderRepository) MarkPaid(tx *gorm.DB, orderID uint, paymentID string, at time.Time) error {
	updates := map[string]any{"paid_at": at}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

// ---------------- Establishment side ----------------

func (r *OrderRepository) establishmentOrders(estID uint) *gorm.DB {
	sub := r.DB.Table("cart_items AS ci").
		Select("ci.order_id").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("p.establishment_id = ? AND ci.order_id IS NOT NULL AND ci.deleted_at IS NULL", estID)
	return r.DB.Model(&entity.Order{}).Where("orders.id IN (?)", sub)
}

type SellerOrderSummary struct {
	ID            uint            `json:"id"`
	TransactionID string          `json:"transactionId"`
	CustomerName  string          `json:"customerName"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	OrderStatusID uint            `json:"orderStatusId"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (r *OrderRepository) ListForEstablishment(estID uint, statusID *uint, page, limit int) ([]SellerOrderSummary, int64, error) {
	q := r.establishmentOrders(estID)
	if statusID != nil && *statusID != 0 {
		q = q.Where("orders.order_status_id = ?", *statusID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID            uint
		TransactionID string
		TotalPrice    decimal.Decimal
		OrderStatusID uint
		StatusName    string
		CreatedAt     time.Time
		FirstName     string
		LastName      string
	}
	if err := q.Session(&gorm.Session{}).
		Select("orders.id, orders.transaction_id, orders.total_price, orders.order_status_id, orders.created_at, s.status_name, u.first_name, u.last_name").
		Joins("JOIN order_statuses s ON s.id = orders.order_status_id").
		Joins("JOIN customers c ON c.id = orders.customer_id").
		Joins("JOIN users u ON u.id = c.user_id").
		Order("orders.id DESC").Limit(limit).Offset((page - 1) * limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]SellerOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, SellerOrderSummary{
			ID:            row.ID,
			TransactionID: row.TransactionID,
			CustomerName:  strings.TrimSpace(row.FirstName + " " + row.LastName),
			TotalPrice:    row.TotalPrice,
			OrderStatusID: row.OrderStatusID,
			Status:        row.StatusName,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, total, nil
}

// GetForEstablishment loads the order with only the establishment's lines.
func (r *OrderRepository) GetForEstablishment(estID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.establishmentOrders(estID).
		Preload("OrderStatus").
		Preload("Customer").Preload("Customer.User").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Joins("JOIN products p ON p.id = cart_items.product_id").
				Where("p.establishment_id = ?", estID).
				Order("cart_items.id ASC")
		}).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("orders.id = ?", orderID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SoldLines returns the establishment's lines on orders in the given statuses.
func (r *OrderRepository) SoldLines(estID uint, statusIDs []uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := r.DB.Model(&entity.CartItem{}).
		Joins("JOIN products p ON p.id = cart_items.product_id").
		Joins("JOIN orders o ON o.id = cart_items.order_id").
		Where("p.establishment_id = ? AND o.order_status_id IN ?", estID, statusIDs).
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) CountForEstablishment(estID uint) (int64, error) {
	var n int64
	err := r.establishmentOrders(estID).Count(&n).Error
	return n, err
}

func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Count(&n).Error
	return n, err
}

func (r *OrderRepository) CountSince(t time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}
