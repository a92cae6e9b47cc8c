package hub

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultWriteTimeout = 5 * time.Second

// Conn is the transport a client writes to. *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client is one registered connection.
type Client struct {
	id   int64
	conn Conn
	mu   sync.Mutex // serializes writes to conn
}

// NewClient wraps a transport connection. id is the caller-chosen client number.
func NewClient(id int64, conn Conn) *Client {
	return &Client{id: id, conn: conn}
}

// ID returns the client number given at construction.
func (c *Client) ID() int64 { return c.id }

func (c *Client) write(text string, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

// Hub tracks the set of live clients and delivers text messages to them.
// All set access goes through one RWMutex; broadcast iterates a snapshot so a
// failed delivery can unregister mid-broadcast without mutating the set being walked.
type Hub struct {
	mu           sync.RWMutex
	clients      map[*Client]struct{}
	writeTimeout time.Duration
}

// New creates a Hub. writeTimeout bounds every delivery attempt; <= 0 uses the default.
func New(writeTimeout time.Duration) *Hub {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Hub{
		clients:      make(map[*Client]struct{}),
		writeTimeout: writeTimeout,
	}
}

// Register adds a client to the live set, making it eligible for broadcasts.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	log.Printf("hub: client #%d registered (total: %d)", c.id, n)
}

// Unregister removes a client and closes its connection.
// Unregistering an absent client is a no-op.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if !ok {
		return
	}
	_ = c.conn.Close()
	log.Printf("hub: client #%d unregistered (total: %d)", c.id, n)
}

// Send delivers text to exactly one client. On failure the caller should
// unregister the client.
func (h *Hub) Send(c *Client, text string) error {
	if err := c.write(text, h.writeTimeout); err != nil {
		return fmt.Errorf("send to client #%d: %w", c.id, err)
	}
	return nil
}

// Broadcast delivers text to every registered client, best effort. A failed
// delivery unregisters that client and does not stop the rest.
func (h *Hub) Broadcast(text string) {
	h.mu.RLock()
	snapshot := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.RUnlock()

	for _, c := range snapshot {
		if err := c.write(text, h.writeTimeout); err != nil {
			log.Printf("hub: broadcast to client #%d failed: %v", c.id, err)
			h.Unregister(c)
		}
	}
}

// Len returns the number of registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
