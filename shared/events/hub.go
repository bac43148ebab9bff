package events

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"contaia-backend/shared/tenancy"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Message is what dashboards receive over the socket.
type Message struct {
	Type      string         `json:"type"` // "connection", "event", "pong"
	Event     *tenancy.Event `json:"event,omitempty"`
	Message   string         `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// client is one websocket connection. An empty orgID receives every event.
// send is never closed; the hub closes done when it drops the client.
type client struct {
	id    string
	orgID string
	conn  *websocket.Conn
	send  chan Message
	done  chan struct{}
}

func newClient(orgID string, conn *websocket.Conn) *client {
	return &client{
		id:    uuid.NewString(),
		orgID: orgID,
		conn:  conn,
		send:  make(chan Message, sendBuffer),
		done:  make(chan struct{}),
	}
}

// deliver queues m without blocking. It reports false when the client is
// gone or its buffer is full.
func (c *client) deliver(m Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- m:
		return true
	default:
		return false
	}
}

// Hub fans committed tenancy events out to connected dashboards.
type Hub struct {
	clients    map[string]*client
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	register   chan *client
	unregister chan *client
	broadcast  chan tenancy.Event
	logger     *zap.Logger
}

// NewHub creates a hub accepting browser connections from allowedOrigins.
// Requests without an Origin header are always accepted.
func NewHub(allowedOrigins []string, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		clients:    make(map[string]*client),
		register:   make(chan *client, 100),
		unregister: make(chan *client, 100),
		broadcast:  make(chan tenancy.Event, 1000),
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(allowedOrigins, origin) {
				return true
			}
			h.logger.Warn("WebSocket connection rejected", zap.String("origin", origin))
			return false
		},
	}
	return h
}

// Run is the hub's event loop; it returns when ctx is done, closing every
// connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c.id] = c
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("WebSocket client connected", zap.String("client_id", c.id), zap.Int("total", total))

		case c := <-h.unregister:
			h.remove(c)

		case ev := <-h.broadcast:
			h.fanOut(ev)

		case <-ctx.Done():
			h.mutex.Lock()
			for id, c := range h.clients {
				close(c.done)
				delete(h.clients, id)
			}
			h.mutex.Unlock()
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.done)
		h.logger.Debug("WebSocket client disconnected", zap.String("client_id", c.id), zap.Int("total", len(h.clients)))
	}
}

func (h *Hub) fanOut(ev tenancy.Event) {
	msg := Message{Type: "event", Event: &ev, Timestamp: time.Now().UTC()}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for _, c := range h.clients {
		if c.orgID != "" && c.orgID != ev.OrganizationID {
			continue
		}
		if !c.deliver(msg) {
			h.logger.Warn("WebSocket client too slow, dropping it", zap.String("client_id", c.id))
			go func(c *client) { h.unregister <- c }(c)
		}
	}
}

// Publish is a tenancy listener. It never blocks the registry.
func (h *Hub) Publish(ev tenancy.Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.logger.Warn("Broadcast queue full, dropping event", zap.String("event", string(ev.Type)))
	}
}

// HandleWebSocketConnection upgrades the request and streams events. The
// optional organization_id query parameter limits the stream to one
// organization.
func (h *Hub) HandleWebSocketConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade WebSocket", zap.Error(err))
		return
	}

	cl := newClient(c.Query("organization_id"), conn)
	cl.send <- Message{Type: "connection", Message: "WebSocket connection established", Timestamp: time.Now().UTC()}
	h.register <- cl

	go h.writePump(cl)
	h.readPump(cl)
}

// readPump handles pings from the dashboard and detects closed connections.
func (h *Hub) readPump(cl *client) {
	defer func() { h.unregister <- cl }()

	cl.conn.SetReadLimit(4096)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in map[string]any
		if err := cl.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket error", zap.String("client_id", cl.id), zap.Error(err))
			}
			return
		}
		if t, _ := in["type"].(string); t == "ping" {
			cl.deliver(Message{Type: "pong", Message: "pong", Timestamp: time.Now().UTC()})
		}
	}
}

// writePump is the only goroutine writing to the connection.
func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case msg := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-cl.done:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// GetConnectionCount returns number of active connections
func (h *Hub) GetConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
