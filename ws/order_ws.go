package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cooldeal/pkg/resp"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

// SellerChecker tells whether a user runs an establishment.
type SellerChecker interface {
	IsSeller(userID uint) (bool, error)
}

// OrderHub pushes new-order events to the sellers' open dashboards.
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> set of connections
	broadcast  chan delivery
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
	sellers    SellerChecker
	log        *zap.Logger
}

// Subscription is one seller connection.
type Subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

type delivery struct {
	UserID uint
	Event  services.OrderEvent
}

func NewOrderHub(sellers SellerChecker, log *zap.Logger) *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan delivery, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		sellers:    sellers,
		log:        log,
	}
}

// Run serves register/unregister/broadcast until ctx ends, then closes every connection.
func (h *OrderHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for _, conns := range h.clients {
				for conn := range conns {
					conn.Close()
				}
			}
			h.clients = make(map[uint]map[*websocket.Conn]bool)
			h.mu.Unlock()
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				if len(h.clients[sub.UserID]) == 0 {
					delete(h.clients, sub.UserID)
				}
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case d := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[d.UserID] {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(d.Event); err != nil {
					h.log.Debug("ws write failed", zap.Uint("user_id", d.UserID), zap.Error(err))
					conn.Close()
					delete(h.clients[d.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyUsers queues the event for each user. A full queue drops the event;
// the dashboard still lists the order on its next load.
func (h *OrderHub) NotifyUsers(userIDs []uint, ev services.OrderEvent) {
	for _, id := range userIDs {
		select {
		case h.broadcast <- delivery{UserID: id, Event: ev}:
		default:
			h.log.Warn("order event dropped", zap.Uint("user_id", id), zap.Uint("order_id", ev.OrderID))
		}
	}
}

// Count returns the number of open connections for a user.
func (h *OrderHub) Count(userID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket: GET /ws/seller/orders?token=...
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	ok, err := h.sellers.IsSeller(userID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if !ok {
		resp.Forbidden(c, "no access")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	sub := Subscription{Conn: conn, UserID: userID}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}
	go h.listen(sub)
}

// listen only drains the socket; sellers never send anything meaningful.
func (h *OrderHub) listen(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
