// Package telemetry streams encounter events to websocket clients such as
// external debug dashboards.
package telemetry

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/milk9111/bossrush/encounter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	clientBuffer = 64
	writeWait    = time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to every connected client. A client that falls
// behind by more than its buffer is dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	history [][]byte
	keep    int
}

// NewHub keeps the last keep events and replays them to new clients.
func NewHub(keep int) *Hub {
	return &Hub{clients: make(map[*client]struct{}), keep: keep}
}

// Observe is an encounter.Observer.
func (h *Hub) Observe(e encounter.Event) {
	if err := h.Publish(e); err != nil {
		log.Printf("telemetry: publish %s: %v", e.Type, err)
	}
}

func (h *Hub) Publish(e encounter.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.keep > 0 {
		h.history = append(h.history, data)
		if len(h.history) > h.keep {
			h.history = h.history[len(h.history)-h.keep:]
		}
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.drop(c)
		}
	}
	return nil
}

// Clients counts connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("telemetry: upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	for _, data := range h.history {
		select {
		case c.send <- data:
		default:
		}
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop only watches for the client going away.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.mu.Lock()
		h.drop(c)
		h.mu.Unlock()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// drop must be called with mu held.
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}
