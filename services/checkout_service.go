package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cooldeal/entity"
	"cooldeal/pkg/pricing"
	"cooldeal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const EventOrderCreated = "order.created"

// OrderEvent is pushed to the sellers whose products were ordered.
type OrderEvent struct {
	Type          string          `json:"type"`
	OrderID       uint            `json:"orderId"`
	TransactionID string          `json:"transactionId"`
	Total         decimal.Decimal `json:"total"`
	Items         int             `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type OrderNotifier interface {
	NotifyUsers(userIDs []uint, ev OrderEvent)
}

type StatusIDs struct {
	Pending   uint
	Paid      uint
	Delivered uint
	Cancelled uint
}

// LoadStatusIDs resolves the order status lookups; every one must be seeded.
func LoadStatusIDs(repo *repository.OrderRepository) (StatusIDs, error) {
	var s StatusIDs
	for name, dst := range map[string]*uint{
		entity.OrderPending:   &s.Pending,
		entity.OrderPaid:      &s.Paid,
		entity.OrderDelivered: &s.Delivered,
		entity.OrderCancelled: &s.Cancelled,
	} {
		id, err := repo.GetStatusIDByName(name)
		if err != nil {
			return StatusIDs{}, fmt.Errorf("order status %q: %w", name, err)
		}
		*dst = id
	}
	return s, nil
}

type CheckoutService struct {
	DB             *gorm.DB
	Carts          *repository.CartRepository
	Orders         *repository.OrderRepository
	Coupons        *repository.CouponRepository
	Customers      *repository.CustomerRepository
	Establishments *repository.EstablishmentRepository
	Gateway        PaymentGateway
	Notifier       OrderNotifier
	Log            *zap.Logger
	Currency       string
	PublicURL      string
	Status         StatusIDs
	Now            func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	carts *repository.CartRepository,
	orders *repository.OrderRepository,
	coupons *repository.CouponRepository,
	customers *repository.CustomerRepository,
	ests *repository.EstablishmentRepository,
	gateway PaymentGateway,
	notifier OrderNotifier,
	log *zap.Logger,
	status StatusIDs,
	currency, publicURL string,
) *CheckoutService {
	return &CheckoutService{
		DB: db, Carts: carts, Orders: orders, Coupons: coupons, Customers: customers,
		Establishments: ests, Gateway: gateway, Notifier: notifier, Log: log,
		Currency: currency, PublicURL: publicURL,
		Status: status, Now: time.Now,
	}
}

type CheckoutIn struct {
	TransactionID string `json:"transaction_id"`
	NotifyURL     string `json:"notify_url"`
	ReturnURL     string `json:"return_url"`
	CartID        uint   `json:"panier" binding:"required"`
}

type CheckoutOut struct {
	Order        *entity.Order `json:"order"`
	PaymentURL   string        `json:"paymentUrl"`
	PaymentError string        `json:"paymentError,omitempty"`
}

func (s *CheckoutService) RequireCustomer(userID uint) (*entity.Customer, error) {
	cust, err := s.Customers.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoCustomer
	}
	return cust, err
}

// Checkout turns the caller's cart into a pending order in one transaction,
// then asks the gateway for a payment page.
func (s *CheckoutService) Checkout(ctx context.Context, o CartOwner, in CheckoutIn) (*CheckoutOut, error) {
	cust, err := s.RequireCustomer(o.UserID)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	txID := strings.TrimSpace(in.TransactionID)
	if txID == "" {
		txID = uuid.NewString()
	}
	notifyURL := in.NotifyURL
	if notifyURL == "" {
		notifyURL = s.PublicURL + "/api/paiement/notify"
	}
	returnURL := in.ReturnURL
	if returnURL == "" {
		returnURL = s.PublicURL + "/api/paiement/success"
	}

	var order entity.Order
	var estIDs []uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.Carts.FindByID(tx, in.CartID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		if err != nil {
			return err
		}
		if !owns(cart, o, cust.ID) {
			return ErrCartNotOwned
		}
		if !pricing.HasItems(cart) {
			return ErrCartEmpty
		}
		if n, err := s.Orders.CountByTransactionID(tx, txID); err != nil {
			return err
		} else if n > 0 {
			return ErrDuplicateTx
		}

		coupon := effectiveCoupon(cart, now)
		priced := *cart
		priced.Coupon = coupon

		order = entity.Order{
			CustomerID:    cust.ID,
			TransactionID: txID,
			TotalPrice:    pricing.TotalWithCoupon(&priced, now),
			NotifyURL:     notifyURL,
			ReturnURL:     returnURL,
			OrderStatusID: s.Status.Pending,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}
		if err := s.Orders.CreateOrder(tx, &order); err != nil {
			return err
		}

		seen := map[uint]bool{}
		for i := range cart.Items {
			it := &cart.Items[i]
			if err := s.Carts.MoveToOrder(tx, it.ID, order.ID, pricing.UnitPrice(&it.Product, now)); err != nil {
				return err
			}
			if it.Product.Quantity != nil {
				n, err := s.Establishments.DecrementStock(tx, it.ProductID, it.Quantity)
				if err != nil {
					return err
				}
				if n == 0 {
					return fmt.Errorf("%s: %w", it.Product.Name, ErrOutOfStock)
				}
			}
			if !seen[it.Product.EstablishmentID] {
				seen[it.Product.EstablishmentID] = true
				estIDs = append(estIDs, it.Product.EstablishmentID)
			}
		}

		if coupon != nil {
			n, err := s.Coupons.IncrementUse(tx, coupon.ID)
			if err != nil {
				return err
			}
			if n == 0 {
				return ErrCouponInvalid
			}
		}
		return s.Carts.Delete(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	saved, err := s.Orders.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}
	out := &CheckoutOut{Order: saved}

	intent, err := s.Gateway.CreateIntent(ctx, PaymentRequest{
		TransactionID:   txID,
		Amount:          saved.TotalPrice,
		Currency:        s.Currency,
		Description:     "Commande " + txID,
		NotifyURL:       notifyURL,
		ReturnURL:       returnURL,
		CustomerName:    cust.User.LastName,
		CustomerSurname: cust.User.FirstName,
		CustomerEmail:   cust.User.Email,
		CustomerPhone:   cust.Contact1,
		CustomerCity:    cust.City,
		CustomerAddress: cust.Address,
	})
	if err != nil {
		s.Log.Warn("payment intent failed", zap.String("transaction_id", txID), zap.Error(err))
		out.PaymentError = err.Error()
	} else {
		if err := s.Orders.UpdatePayment(saved.ID, intent.Token, intent.URL, intent.ResponseID); err != nil {
			return nil, err
		}
		saved.PaymentToken, saved.PaymentURL, saved.APIResponseID = intent.Token, intent.URL, intent.ResponseID
		out.PaymentURL = intent.URL
	}

	s.Log.Info("order created",
		zap.Uint("order_id", saved.ID),
		zap.String("transaction_id", txID),
		zap.String("total", saved.TotalPrice.String()))
	s.notify(saved, estIDs)
	return out, nil
}

func (s *CheckoutService) notify(o *entity.Order, estIDs []uint) {
	if s.Notifier == nil {
		return
	}
	owners, err := s.Establishments.OwnerUserIDs(estIDs)
	if err != nil {
		s.Log.Warn("resolve sellers to notify", zap.Error(err))
		return
	}
	count := 0
	for _, it := range o.Items {
		count += it.Quantity
	}
	s.Notifier.NotifyUsers(owners, OrderEvent{
		Type:          EventOrderCreated,
		OrderID:       o.ID,
		TransactionID: o.TransactionID,
		Total:         o.TotalPrice,
		Items:         count,
		CreatedAt:     o.CreatedAt,
	})
}

// ConfirmPayment settles a pending order from the gateway's verdict. Orders
// that already left Pending are returned unchanged.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, txID string) (*entity.Order, error) {
	o, err := s.Orders.GetByTransactionID(txID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if o.OrderStatusID != s.Status.Pending {
		return o, nil
	}

	res, err := s.Gateway.Verify(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		switch res.State {
		case PaymentAccepted:
			n, err := s.Orders.UpdateStatusGuard(tx, o.ID, s.Status.Pending, s.Status.Paid)
			if err != nil || n == 0 {
				return err
			}
			return s.Orders.MarkPaid(tx, o.ID, res.PaymentID, s.Now())
		case PaymentRefused:
			_, err := s.Orders.UpdateStatusGuard(tx, o.ID, s.Status.Pending, s.Status.Cancelled)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("payment notification",
		zap.String("transaction_id", txID),
		zap.String("state", string(res.State)))
	return s.Orders.GetOrder(o.ID)
}

func (s *CheckoutService) ByTransaction(txID string) (*entity.Order, error) {
	o, err := s.Orders.GetByTransactionID(txID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}
