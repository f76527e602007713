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

// CartOwner identifies the caller: always a session, sometimes a logged-in user.
type CartOwner struct {
	SessionKey string
	UserID     uint
}

type CartService struct {
	DB        *gorm.DB
	Carts     *repository.CartRepository
	Catalog   *repository.CatalogRepository
	Coupons   *repository.CouponRepository
	Customers *repository.CustomerRepository
	Now       func() time.Time
}

func NewCartService(
	db *gorm.DB,
	carts *repository.CartRepository,
	catalog *repository.CatalogRepository,
	coupons *repository.CouponRepository,
	customers *repository.CustomerRepository,
) *CartService {
	return &CartService{DB: db, Carts: carts, Catalog: catalog, Coupons: coupons, Customers: customers, Now: time.Now}
}

type CartLine struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type CartView struct {
	ID              uint            `json:"id"`
	Items           []CartLine      `json:"items"`
	Count           int             `json:"count"`
	HasItems        bool            `json:"hasItems"`
	Total           decimal.Decimal `json:"total"`
	TotalWithCoupon decimal.Decimal `json:"totalWithCoupon"`
	Coupon          *entity.Coupon  `json:"coupon,omitempty"`
}

// customerID returns 0 for anonymous callers and for users without a customer profile.
func (s *CartService) customerID(o CartOwner) uint {
	if o.UserID == 0 {
		return 0
	}
	c, err := s.Customers.FindByUserID(o.UserID)
	if err != nil {
		return 0
	}
	return c.ID
}

func owns(c *entity.Cart, o CartOwner, customerID uint) bool {
	if c.CustomerID != nil {
		return customerID != 0 && *c.CustomerID == customerID
	}
	return o.SessionKey != "" && c.SessionKey == o.SessionKey
}

// Resolve returns the caller's cart, creating it when needed. A customer
// inherits the anonymous cart of their session; if they already had one the
// anonymous lines are merged into it.
func (s *CartService) Resolve(o CartOwner) (*entity.Cart, error) {
	custID := s.customerID(o)
	var out *entity.Cart
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		anon, err := s.Carts.FindAnonymous(tx, o.SessionKey)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if custID == 0 {
			if anon != nil {
				out = anon
				return nil
			}
			c := entity.Cart{SessionKey: o.SessionKey}
			if err := s.Carts.Create(tx, &c); err != nil {
				return err
			}
			out = &c
			return nil
		}

		mine, err := s.Carts.FindForCustomer(tx, custID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		switch {
		case mine == nil && anon != nil:
			if err := s.Carts.Claim(tx, anon.ID, custID, o.SessionKey); err != nil {
				return err
			}
		case mine == nil:
			c := entity.Cart{SessionKey: o.SessionKey, CustomerID: &custID}
			if err := s.Carts.Create(tx, &c); err != nil {
				return err
			}
			out = &c
			return nil
		case anon != nil:
			for _, it := range anon.Items {
				if _, err := s.Carts.UpsertItem(tx, mine.ID, it.ProductID, it.Quantity); err != nil {
					return err
				}
			}
			if mine.CouponID == nil && anon.CouponID != nil {
				if err := s.Carts.AttachCoupon(tx, mine.ID, anon.CouponID); err != nil {
					return err
				}
			}
			if err := s.Carts.Delete(tx, anon.ID); err != nil {
				return err
			}
		}
		target := anon
		if mine != nil {
			target = mine
		}
		out, err = s.Carts.FindByID(tx, target.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// owned loads a cart and checks it belongs to the caller.
func (s *CartService) owned(tx *gorm.DB, o CartOwner, cartID uint) (*entity.Cart, error) {
	c, err := s.Carts.FindByID(tx, cartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	if !owns(c, o, s.customerID(o)) {
		return nil, ErrCartNotOwned
	}
	return c, nil
}

func (s *CartService) Get(o CartOwner, cartID uint) (*entity.Cart, error) {
	return s.owned(s.DB, o, cartID)
}

func (s *CartService) Add(o CartOwner, cartID, productID uint, qty int) error {
	if qty <= 0 {
		qty = 1
	}
	if _, err := s.owned(s.DB, o, cartID); err != nil {
		return err
	}
	p, err := s.Catalog.ActiveProductByID(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductMissing
	}
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		it, err := s.Carts.UpsertItem(tx, cartID, productID, qty)
		if err != nil {
			return err
		}
		if p.Quantity != nil && it.Quantity > *p.Quantity {
			return ErrOutOfStock
		}
		return nil
	})
}

// Update sets the line's quantity; zero or less removes it.
func (s *CartService) Update(o CartOwner, cartID, productID uint, qty int) error {
	if _, err := s.owned(s.DB, o, cartID); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		it, err := s.Carts.FindItemByProduct(tx, cartID, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}
		if qty <= 0 {
			_, err := s.Carts.RemoveItem(tx, cartID, it.ID)
			return err
		}
		if it.Product.Quantity != nil && qty > *it.Product.Quantity {
			return ErrOutOfStock
		}
		return s.Carts.SetQty(tx, it.ID, qty)
	})
}

func (s *CartService) Remove(o CartOwner, cartID, itemID uint) error {
	if _, err := s.owned(s.DB, o, cartID); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Carts.RemoveItem(tx, cartID, itemID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

func (s *CartService) ApplyCoupon(o CartOwner, cartID uint, code string) (*entity.Coupon, error) {
	if _, err := s.owned(s.DB, o, cartID); err != nil {
		return nil, err
	}
	cp, err := s.Coupons.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponInvalid
	}
	if err != nil {
		return nil, err
	}
	if !pricing.CouponUsable(cp, s.Now()) {
		return nil, ErrCouponInvalid
	}
	if err := s.Carts.AttachCoupon(s.DB, cartID, &cp.ID); err != nil {
		return nil, err
	}
	return cp, nil
}

// effectiveCoupon drops a coupon that expired or ran out after it was attached.
func effectiveCoupon(c *entity.Cart, now time.Time) *entity.Coupon {
	if c.Coupon != nil && pricing.CouponUsable(c.Coupon, now) {
		return c.Coupon
	}
	return nil
}

// View prices the cart as of now.
func (s *CartService) View(c *entity.Cart) *CartView {
	now := s.Now()
	v := &CartView{ID: c.ID, Items: make([]CartLine, 0, len(c.Items)), HasItems: pricing.HasItems(c)}
	for i := range c.Items {
		it := &c.Items[i]
		v.Items = append(v.Items, CartLine{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Slug:      it.Product.Slug,
			Image:     it.Product.Image,
			Quantity:  it.Quantity,
			UnitPrice: pricing.UnitPrice(&it.Product, now),
			Total:     pricing.LineTotal(it, now),
		})
		v.Count += it.Quantity
	}
	priced := *c
	priced.Coupon = effectiveCoupon(c, now)
	v.Coupon = priced.Coupon
	v.Total = pricing.CartTotal(c.Items, now)
	v.TotalWithCoupon = pricing.TotalWithCoupon(&priced, now)
	return v
}
