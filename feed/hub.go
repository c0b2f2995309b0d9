// Package feed streams engine notifications to spectators over websockets.
package feed

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"

	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/status"
)

// Message is the JSON frame sent for every notification
type Message struct {
	Type    string `json:"type"`
	At      int64  `json:"at"` // Game time in milliseconds
	Payload any    `json:"payload,omitempty"`
}

type client struct {
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	once    sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans notifications out to connected spectators
// HandleEvent never blocks: slow or chatty clients lose messages instead
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	registry *status.Registry
	upgrader websocket.Upgrader

	statSent    *atomic.Int64
	statDropped *atomic.Int64
	statClients *atomic.Int64
}

// NewHub creates a hub reporting to reg; nil reg uses a private registry
func NewHub(reg *status.Registry) *Hub {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		registry: reg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		statSent:    reg.Ints.Get("feed.sent"),
		statDropped: reg.Ints.Get("feed.dropped"),
		statClients: reg.Ints.Get("feed.clients"),
	}
}

// EventTypes subscribes to every notification
func (h *Hub) EventTypes() []event.EventType { return nil }

// HandleEvent encodes ev once and queues it for every client
func (h *Hub) HandleEvent(ev event.GameEvent) {
	data, err := json.Marshal(Message{
		Type:    ev.Type.String(),
		At:      ev.At.Milliseconds(),
		Payload: ev.Payload,
	})
	if err != nil {
		log.Printf("feed: encode %s: %v", ev.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.limiter.Allow() {
			h.statDropped.Add(1)
			continue
		}
		select {
		case c.send <- data:
			h.statSent.Add(1)
		default:
			h.statDropped.Add(1)
		}
	}
}

// Router returns the HTTP routes: GET /ws and GET /status
func (h *Hub) Router() *httprouter.Router {
	r := httprouter.New()
	r.GET("/ws", h.serveWS)
	r.GET("/status", h.serveStatus)
	return r
}

// Clients returns the connected spectator count
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client; later connections are refused
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
	h.statClients.Store(0)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.statClients.Store(int64(len(h.clients)))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
		h.statClients.Store(int64(len(h.clients)))
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("feed: upgrade error:", err)
		return
	}
	c := &client{
		conn:    conn,
		send:    make(chan []byte, parameter.FeedSendBuffer),
		limiter: rate.NewLimiter(parameter.FeedRate, parameter.FeedBurst),
	}
	if !h.register(c) {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"))
		conn.Close()
		return
	}

	go c.writePump()
	c.readPump(h)
}

// readPump discards inbound frames and detects disconnects
func (c *client) readPump(h *Hub) {
	defer h.unregister(c)
	c.conn.SetReadLimit(parameter.FeedReadLimit)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(parameter.FeedWriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(parameter.FeedWriteTimeout))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) serveStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.registry.Snapshot()); err != nil {
		log.Printf("feed: status: %v", err)
	}
}
