package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cooldeal/configs"
	"cooldeal/entity"
	"cooldeal/pkg/testdb"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubRenderer struct{}

func (stubRenderer) Render(context.Context, string) ([]byte, error) { return []byte("%PDF-1.4"), nil }

type server struct {
	r   *gin.Engine
	db  *gorm.DB
	cfg *configs.Config
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &configs.Config{
		AppEnv:        "development",
		JWTSecret:     "test-secret",
		JWTTTL:        time.Hour,
		TokenCookie:   "cooldeal_token",
		SessionCookie: "cooldeal_sid",
		SessionTTL:    time.Hour,
		CORSOrigins:   []string{"*"},
		MediaRoot:     t.TempDir(),
		PublicURL:     "https://shop.test",
		Currency:      "XOF",
	}
	db := testdb.Open(t)
	r := gin.New()
	_, err := RegisterRoutes(r, Deps{
		Cfg: cfg, DB: db, Log: zap.NewNop(),
		Gateway:  services.LocalGateway{},
		Mailer:   &services.LogMailer{Log: zap.NewNop()},
		Renderer: stubRenderer{},
	})
	require.NoError(t, err)
	return &server{r: r, db: db, cfg: cfg}
}

// client keeps the cookies the server hands out, like a browser would.
type client struct {
	s       *server
	cookies map[string]*http.Cookie
}

func (s *server) client() *client { return &client{s: s, cookies: map[string]*http.Cookie{}} }

func (c *client) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	w := httptest.NewRecorder()
	c.s.r.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	out := map[string]any{}
	if w.Header().Get("Content-Type") != "application/pdf" {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

func (c *client) loginAs(t *testing.T, id uint, role string) {
	t.Helper()
	tok, err := utils.GenerateToken(id, role, c.s.cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	c.cookies[c.s.cfg.TokenCookie] = &http.Cookie{Name: c.s.cfg.TokenCookie, Value: tok}
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "no data in %v", body)
	return d
}

func (s *server) shopper(t *testing.T, username, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := entity.User{Username: username, Email: username + "@mail.test", Password: string(hash), Role: entity.RoleCustomer}
	require.NoError(t, s.db.Create(&u).Error)
	require.NoError(t, s.db.Create(&entity.Customer{UserID: u.ID, City: "Abidjan"}).Error)
	return &u
}

func (s *server) deal(t *testing.T, seller, name string, price int64) (*entity.User, *entity.Product) {
	t.Helper()
	u := entity.User{Username: seller, Email: seller + "@shop.test", Role: entity.RoleSeller}
	require.NoError(t, s.db.Create(&u).Error)
	e := entity.Establishment{UserID: u.ID, Name: "Chez " + seller, Status: true}
	require.NoError(t, s.db.Create(&e).Error)
	p := entity.Product{Name: name, Price: decimal.NewFromInt(price), PromoPrice: decimal.Zero, EstablishmentID: e.ID, Status: true}
	require.NoError(t, s.db.Create(&p).Error)
	return &u, &p
}

func TestShoppingJourney(t *testing.T) {
	s := newServer(t)
	_, pizza := s.deal(t, "bob", "Pizza", 100)
	awa := s.shopper(t, "awa", "secret1")
	c := s.client()

	code, body := c.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, c.cookies, s.cfg.SessionCookie)
	cartID := data(t, body)["id"]

	_, body = c.do(t, http.MethodPost, "/api/cart/add", gin.H{"panier": cartID, "produit": pizza.ID, "quantite": 2})
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Produit ajouté au panier", body["message"])

	_, body = c.do(t, http.MethodPost, "/api/cart/add", gin.H{"panier": cartID})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Requête invalide", body["message"])

	code, _ = c.do(t, http.MethodGet, "/api/checkout", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = c.do(t, http.MethodGet, "/api/customer/login", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, data(t, body)["authenticated"])

	_, body = c.do(t, http.MethodPost, "/api/customer/login", gin.H{"username": "awa", "password": "nope"})
	assert.Equal(t, false, body["success"])

	_, body = c.do(t, http.MethodPost, "/api/customer/login", gin.H{"username": "awa@mail.test", "password": "secret1"})
	require.Equal(t, true, body["success"], body)
	assert.Equal(t, entity.RoleCustomer, body["role"])
	require.Contains(t, c.cookies, s.cfg.TokenCookie)

	sid := c.cookies[s.cfg.SessionCookie].Value
	var sess entity.Session
	require.NoError(t, s.db.Where("sid = ?", sid).First(&sess).Error)
	require.NotNil(t, sess.UserID, "session carries the signed-in user")
	assert.Equal(t, awa.ID, *sess.UserID)

	code, body = c.do(t, http.MethodGet, "/api/customer/login", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data(t, body)["authenticated"])
	assert.Equal(t, "/", data(t, body)["redirect"])

	code, body = c.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	view := data(t, body)
	assert.Equal(t, cartID, view["id"], "anonymous cart follows the login")
	assert.EqualValues(t, 2, view["count"])
	assert.Equal(t, "200", view["total"])

	_, body = c.do(t, http.MethodPost, "/api/paiement/details", gin.H{"panier": cartID})
	require.Equal(t, true, body["success"], body)
	assert.Equal(t, "Commande enregistrée", body["message"])
	txID, _ := body["transaction_id"].(string)
	require.NotEmpty(t, txID)
	assert.Contains(t, body["payment_url"], "/api/paiement/success?transaction_id="+txID)

	code, body = c.do(t, http.MethodGet, "/api/paiement/success?transaction_id="+txID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Paid", data(t, body)["status"])

	code, body = c.do(t, http.MethodPost, "/api/paiement/notify", gin.H{"cpm_trans_id": txID})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Paid", data(t, body)["status"])

	code, _ = c.do(t, http.MethodPost, "/api/paiement/notify", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = c.do(t, http.MethodGet, "/api/client/orders", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, data(t, body)["total"])

	_, body = c.do(t, http.MethodPost, "/api/customer/logout", nil)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, c.cookies, s.cfg.TokenCookie)
	var after entity.Session
	require.NoError(t, s.db.Where("sid = ?", sid).First(&after).Error)
	assert.Nil(t, after.UserID, "logout detaches the session")
	code, _ = c.do(t, http.MethodGet, "/api/client/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestReceiptDownload(t *testing.T) {
	s := newServer(t)
	_, pizza := s.deal(t, "bob", "Pizza", 100)
	awa := s.shopper(t, "awa", "secret1")
	eve := s.shopper(t, "eve", "secret1")

	c := s.client()
	c.loginAs(t, awa.ID, entity.RoleCustomer)
	_, body := c.do(t, http.MethodGet, "/api/cart", nil)
	cartID := data(t, body)["id"]
	c.do(t, http.MethodPost, "/api/cart/add", gin.H{"panier": cartID, "produit": pizza.ID})
	_, body = c.do(t, http.MethodPost, "/api/paiement/details", gin.H{"panier": cartID, "transaction_id": "TX-R"})
	require.Equal(t, true, body["success"], body)

	var o entity.Order
	require.NoError(t, s.db.Where("transaction_id = ?", "TX-R").First(&o).Error)
	path := fmt.Sprintf("/api/client/orders/%d/receipt", o.ID)

	code, _ := c.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, code)

	intruder := s.client()
	intruder.loginAs(t, eve.ID, entity.RoleCustomer)
	code, body = intruder.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "/client/orders", body["redirect"])
}

func TestRoleGuards(t *testing.T) {
	s := newServer(t)
	bob, _ := s.deal(t, "bob", "Pizza", 100)
	awa := s.shopper(t, "awa", "secret1")

	cases := []struct {
		name string
		id   uint
		role string
		path string
		want int
	}{
		{"anonymous seller area", 0, "", "/api/seller/dashboard", http.StatusUnauthorized},
		{"customer in seller area", awa.ID, entity.RoleCustomer, "/api/seller/dashboard", http.StatusForbidden},
		{"seller dashboard", bob.ID, entity.RoleSeller, "/api/seller/dashboard", http.StatusOK},
		{"seller in admin area", bob.ID, entity.RoleSeller, "/api/admin/dashboard", http.StatusForbidden},
		{"admin dashboard", 99, entity.RoleAdmin, "/api/admin/dashboard", http.StatusOK},
		{"seller in customer area", bob.ID, entity.RoleSeller, "/api/client/profile", http.StatusForbidden},
		{"customer profile", awa.ID, entity.RoleCustomer, "/api/client/profile", http.StatusOK},
		{"public shop", 0, "", "/api/shop", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := s.client()
			if tc.role != "" {
				c.loginAs(t, tc.id, tc.role)
			}
			code, body := c.do(t, http.MethodGet, tc.path, nil)
			assert.Equal(t, tc.want, code, body)
		})
	}
}

func TestSellerProductAPI(t *testing.T) {
	s := newServer(t)
	bob, pizza := s.deal(t, "bob", "Pizza", 100)
	carl, _ := s.deal(t, "carl", "Sushi", 50)

	c := s.client()
	c.loginAs(t, carl.ID, entity.RoleSeller)
	code, _ := c.do(t, http.MethodGet, fmt.Sprintf("/api/seller/products/%d", pizza.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)

	c.loginAs(t, bob.ID, entity.RoleSeller)
	code, body := c.do(t, http.MethodGet, fmt.Sprintf("/api/seller/products/%d", pizza.ID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Pizza", data(t, body)["name"])

	code, _ = c.do(t, http.MethodDelete, fmt.Sprintf("/api/seller/products/%d", pizza.ID), nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = c.do(t, http.MethodGet, fmt.Sprintf("/api/seller/products/%d", pizza.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestContactAndNewsletter(t *testing.T) {
	s := newServer(t)
	c := s.client()

	_, body := c.do(t, http.MethodPost, "/api/contact", gin.H{"nom": "Awa", "email": "awa@mail.test"})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Merci de renseigner correctement les champs", body["message"])

	_, body = c.do(t, http.MethodPost, "/api/contact",
		gin.H{"nom": "Awa", "email": "awa@mail.test", "sujet": "Deal", "messages": "Bonjour"})
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Merci pour votre message", body["message"])

	_, body = c.do(t, http.MethodPost, "/api/newsletter", gin.H{"email": "not-an-email"})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Merci de renseigner une adresse email correcte", body["message"])

	for i := 0; i < 2; i++ {
		_, body = c.do(t, http.MethodPost, "/api/newsletter", gin.H{"email": "awa@mail.test"})
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Félicitations vous êtes abonnés à notre newsletter", body["message"])
	}

	admin := s.client()
	admin.loginAs(t, 1, entity.RoleAdmin)
	code, body := admin.do(t, http.MethodGet, "/api/admin/newsletter", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)
}
