// Package observe streams simulation snapshots to browsers and exposes
// them over a small HTTP API. The simulator itself is never touched from
// here: the driver publishes copies, the hub fans them out.
package observe

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/portsim/portsim/sim"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 8
)

// Hub keeps the latest published snapshot and broadcasts every new one to
// the connected WebSocket clients.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu       sync.RWMutex
	latest   *sim.Snapshot
	encoded  []byte
	log      *logrus.Entry
	stopOnce sync.Once
	done     chan struct{}
}

// Client is one WebSocket connection. Messages are queued on send and
// written by the client's own write pump.
type Client struct {
	ID   string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

// NewHub creates a hub. A nil logger uses the logrus standard logger.
func NewHub(log *logrus.Entry) *Hub {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 1),
		log:        log.WithField("component", "hub"),
		done:       make(chan struct{}),
	}
}

// Run dispatches registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) error {
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			for id, c := range h.clients {
				close(c.send)
				delete(h.clients, id)
			}
			return nil

		case c := <-h.register:
			h.clients[c.ID] = c
			h.log.Infof("client %s connected, %d total", c.ID, len(h.clients))
			if msg := h.Latest(); msg != nil {
				h.deliver(c, msg)
			}

		case c := <-h.unregister:
			if _, ok := h.clients[c.ID]; ok {
				delete(h.clients, c.ID)
				close(c.send)
				h.log.Infof("client %s disconnected, %d total", c.ID, len(h.clients))
			}

		case msg := <-h.broadcast:
			for _, c := range h.clients {
				h.deliver(c, msg)
			}
		}
	}
}

// deliver queues msg for c, dropping the client if it cannot keep up.
func (h *Hub) deliver(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		h.log.Warnf("client %s too slow, dropping connection", c.ID)
		delete(h.clients, c.ID)
		close(c.send)
	}
}

// Publish stores snap as the latest snapshot and broadcasts it. Only the
// newest frame matters: if the previous one is still pending it is replaced.
func (h *Hub) Publish(snap sim.Snapshot) error {
	msg, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	h.mu.Lock()
	h.latest = &snap
	h.encoded = msg
	h.mu.Unlock()

	for {
		select {
		case h.broadcast <- msg:
			return nil
		case <-h.done:
			return nil
		default:
		}
		select {
		case <-h.broadcast:
		default:
		}
	}
}

// Latest returns the JSON encoding of the latest snapshot, or nil.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.encoded
}

// Snapshot returns the latest published snapshot.
func (h *Hub) Snapshot() (sim.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return sim.Snapshot{}, false
	}
	return *h.latest, true
}

// Attach registers conn with the hub and starts its pumps. It returns
// false if the hub has stopped.
func (h *Hub) Attach(conn *websocket.Conn) bool {
	c := &Client{
		ID:   uuid.NewString(),
		conn: conn,
		hub:  h,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return false
	}
	go c.writePump()
	go c.readPump()
	return true
}

// readPump discards client messages and watches for the connection closing.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debugf("client %s read error: %v", c.ID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
