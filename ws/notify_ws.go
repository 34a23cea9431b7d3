package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/amrkal/moringa-backend/entity"
)

// OrderEvent is what the back-office bell receives.
type OrderEvent struct {
	Type        string    `json:"type"` // order_created | order_paid
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	OrderType   string    `json:"orderType"`
	Total       int64     `json:"total"`
	At          time.Time `json:"at"`
}

// NotificationHub fans order events out to connected admin clients.
type NotificationHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan OrderEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan OrderEvent, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *NotificationHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// OrderCreated / OrderPaid implement the checkout notifier.

func (h *NotificationHub) OrderCreated(o *entity.Order) {
	h.publish("order_created", o)
}

func (h *NotificationHub) OrderPaid(o *entity.Order) {
	h.publish("order_paid", o)
}

func (h *NotificationHub) publish(kind string, o *entity.Order) {
	ev := OrderEvent{
		Type:        kind,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		OrderType:   string(o.OrderType),
		Total:       o.Total,
		At:          time.Now(),
	}
	select {
	case h.broadcast <- ev:
	default:
		// a saturated hub never blocks checkout
		log.Println("ws: dropping order event, broadcast buffer full")
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // CORS handles origins
}

// Serve upgrades GET /ws/notifications for an authenticated admin.
func (h *NotificationHub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	h.register <- conn

	// reader loop only detects close; clients never send
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
