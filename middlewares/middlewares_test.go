package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cooldeal/configs"
	"cooldeal/entity"
	"cooldeal/pkg/testdb"
	"cooldeal/repository"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *configs.Config {
	return &configs.Config{
		JWTSecret:     "test-secret",
		TokenCookie:   "cooldeal_token",
		SessionCookie: "cooldeal_sid",
		SessionTTL:    time.Hour,
		AppEnv:        "production",
		PublicURL:     "http://localhost:8000",
	}
}

func token(t *testing.T, id uint, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, role, "test-secret", time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	r := gin.New()
	r.GET("/seller", AuthMiddleware(cfg, entity.RoleSeller, entity.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": utils.CurrentUserID(c), "role": utils.CurrentRole(c)})
	})
	r.GET("/any", OptionalAuth(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": utils.CurrentUserID(c)})
	})

	cases := []struct {
		name   string
		path   string
		header string
		cookie string
		want   int
	}{
		{"no token", "/seller", "", "", http.StatusUnauthorized},
		{"garbage", "/seller", "Bearer nope", "", http.StatusUnauthorized},
		{"wrong role", "/seller", "Bearer " + token(t, 1, entity.RoleCustomer), "", http.StatusForbidden},
		{"header", "/seller", "Bearer " + token(t, 2, entity.RoleSeller), "", http.StatusOK},
		{"cookie", "/seller", "", token(t, 3, entity.RoleAdmin), http.StatusOK},
		{"optional anonymous", "/any", "", "", http.StatusOK},
		{"optional bad token", "/any", "Bearer nope", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cfg.TokenCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	repo := repository.NewSessionRepository(testdb.Open(t))
	r := gin.New()
	r.GET("/", Session(repo, cfg, zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, utils.SessionKey(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cfg.SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
	key := w.Body.String()
	assert.Equal(t, key, cookies[0].Value)

	t.Run("known cookie is reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, key, w.Body.String())
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("unknown cookie gets a new session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cfg.SessionCookie, Value: "forged"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "forged", w.Body.String())
		assert.NotEqual(t, key, w.Body.String())
		assert.Len(t, w.Result().Cookies(), 1)
	})

	t.Run("https site marks the cookie secure", func(t *testing.T) {
		secure := *cfg
		secure.PublicURL = "https://shop.test"
		r := gin.New()
		r.GET("/", Session(repo, &secure, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].Secure)
	})
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	preflight := func(h gin.HandlerFunc, origin string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(h)
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight(CORSMiddleware([]string{"*"}), "https://any.test")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	named := CORSMiddleware([]string{"https://shop.test"})
	w = preflight(named, "https://shop.test")
	assert.Equal(t, "https://shop.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight(named, "https://evil.test")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
