package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cooldeal/middlewares"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSellers map[uint]bool

func (f fakeSellers) IsSeller(userID uint) (bool, error) { return f[userID], nil }

const secret = "test-secret"

func startHub(t *testing.T, sellers fakeSellers) (*OrderHub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewOrderHub(sellers, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws/seller/orders", middlewares.WSAuthMiddleware(secret), hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/seller/orders"
}

func dial(t *testing.T, url string, userID uint) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	tok, err := utils.GenerateToken(userID, "seller", secret, time.Hour)
	require.NoError(t, err)
	return websocket.DefaultDialer.Dial(url+"?token="+tok, nil)
}

func TestOrderHub_DeliversToSeller(t *testing.T) {
	hub, url := startHub(t, fakeSellers{7: true})

	conn, _, err := dial(t, url, 7)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count(7) == 1 }, time.Second, 10*time.Millisecond)

	hub.NotifyUsers([]uint{7, 8}, services.OrderEvent{Type: services.EventOrderCreated, OrderID: 42, TransactionID: "tx-42", Items: 3})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got services.OrderEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, services.EventOrderCreated, got.Type)
	assert.Equal(t, uint(42), got.OrderID)
	assert.Equal(t, "tx-42", got.TransactionID)
	assert.Equal(t, 3, got.Items)
}

func TestOrderHub_RejectsNonSeller(t *testing.T) {
	_, url := startHub(t, fakeSellers{})

	_, res, err := dial(t, url, 9)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestOrderHub_RejectsMissingToken(t *testing.T) {
	_, url := startHub(t, fakeSellers{1: true})

	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestOrderHub_UnregistersOnClose(t *testing.T) {
	hub, url := startHub(t, fakeSellers{3: true})

	conn, _, err := dial(t, url, 3)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Count(3) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count(3) == 0 }, 2*time.Second, 10*time.Millisecond)
}
