package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cooldeal/entity"
	"cooldeal/pkg/testdb"
	"cooldeal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func datePtr(offset int) *time.Time {
	t := now.AddDate(0, 0, offset)
	return &t
}

// ----- fakes -----

type fakeGateway struct {
	mu       sync.Mutex
	requests []PaymentRequest
	fail     error
	state    PaymentState
}

func (g *fakeGateway) CreateIntent(_ context.Context, req PaymentRequest) (*PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.fail != nil {
		return nil, g.fail
	}
	return &PaymentIntent{Token: "tok-" + req.TransactionID, URL: "https://pay.test/" + req.TransactionID, ResponseID: "resp-1"}, nil
}

func (g *fakeGateway) Verify(_ context.Context, txID string) (*PaymentResult, error) {
	if g.state == "" {
		return &PaymentResult{State: PaymentAccepted, PaymentID: "pay-" + txID}, nil
	}
	return &PaymentResult{State: g.state, PaymentID: "pay-" + txID}, nil
}

type sentMail struct{ To, Subject, Body string }

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakeRenderer struct{ html string }

func (r *fakeRenderer) Render(_ context.Context, html string) ([]byte, error) {
	r.html = html
	return []byte("%PDF-1.4 fake"), nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	users  [][]uint
	events []OrderEvent
}

func (n *fakeNotifier) NotifyUsers(userIDs []uint, ev OrderEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.users = append(n.users, userIDs)
	n.events = append(n.events, ev)
}

var errGatewayDown = errors.New("gateway down")

// ----- world -----

type world struct {
	db        *gorm.DB
	carts     *repository.CartRepository
	catalog   *repository.CatalogRepository
	coupons   *repository.CouponRepository
	customers *repository.CustomerRepository
	orders    *repository.OrderRepository
	ests      *repository.EstablishmentRepository
	users     *repository.UserRepository
	tokens    *repository.TokenRepository
	site      *repository.SiteRepository
	gateway   *fakeGateway
	notifier  *fakeNotifier
	status    StatusIDs
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db := testdb.Open(t)
	orders := repository.NewOrderRepository(db)
	status, err := LoadStatusIDs(orders)
	require.NoError(t, err)
	return &world{
		db:        db,
		carts:     repository.NewCartRepository(db),
		catalog:   repository.NewCatalogRepository(db),
		coupons:   repository.NewCouponRepository(db),
		customers: repository.NewCustomerRepository(db),
		orders:    orders,
		ests:      repository.NewEstablishmentRepository(db),
		users:     repository.NewUserRepository(db),
		tokens:    repository.NewTokenRepository(db),
		site:      repository.NewSiteRepository(db),
		gateway:   &fakeGateway{},
		notifier:  &fakeNotifier{},
		status:    status,
	}
}

func (w *world) cartService() *CartService {
	s := NewCartService(w.db, w.carts, w.catalog, w.coupons, w.customers)
	s.Now = func() time.Time { return now }
	return s
}

func (w *world) checkoutService() *CheckoutService {
	s := NewCheckoutService(w.db, w.carts, w.orders, w.coupons, w.customers, w.ests,
		w.gateway, w.notifier, zap.NewNop(), w.status, "XOF", "https://shop.test")
	s.Now = func() time.Time { return now }
	return s
}

func (w *world) orderService() *OrderService {
	svc := NewOrderService(w.db, w.orders, w.customers, w.ests, w.status)
	svc.Now = func() time.Time { return now }
	return svc
}

func (w *world) customer(t *testing.T, username string) (*entity.User, *entity.Customer) {
	t.Helper()
	u := entity.User{Username: username, Email: username + "@mail.test", FirstName: "Awa", LastName: "Koné", Role: entity.RoleCustomer}
	require.NoError(t, w.db.Create(&u).Error)
	c := entity.Customer{UserID: u.ID, City: "Abidjan", Contact1: "0102030405", Address: "Cocody"}
	require.NoError(t, w.db.Create(&c).Error)
	c.User = u
	return &u, &c
}

func (w *world) seller(t *testing.T, username string) (*entity.User, *entity.Establishment) {
	t.Helper()
	u := entity.User{Username: username, Email: username + "@shop.test", Role: entity.RoleSeller}
	require.NoError(t, w.db.Create(&u).Error)
	cat := entity.EstablishmentCategory{Name: "Restaurants " + username, Status: true}
	require.NoError(t, w.db.Create(&cat).Error)
	e := entity.Establishment{UserID: u.ID, Name: "Chez " + username, CategoryID: &cat.ID, Status: true, Email: u.Email}
	require.NoError(t, w.db.Create(&e).Error)
	return &u, &e
}

func (w *world) product(t *testing.T, est *entity.Establishment, name, price, promo string, stock *int) *entity.Product {
	t.Helper()
	p := entity.Product{
		Name:                    name,
		Price:                   dec(price),
		PromoPrice:              dec(promo),
		Quantity:                stock,
		EstablishmentID:         est.ID,
		EstablishmentCategoryID: est.CategoryID,
		Status:                  true,
	}
	require.NoError(t, w.db.Create(&p).Error)
	return &p
}

func (w *world) coupon(t *testing.T, code, reduction string, maxUses int) *entity.Coupon {
	t.Helper()
	c := entity.Coupon{
		Code: code, Label: code, Active: true, Status: true,
		ExpiresOn: now.AddDate(0, 1, 0), Reduction: dec(reduction), MaxUses: maxUses,
	}
	require.NoError(t, w.db.Create(&c).Error)
	return &c
}

func intPtr(n int) *int { return &n }
