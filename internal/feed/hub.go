/*
Package feed fans roster event payloads out to WebSocket clients.

One Hub goroutine owns the client set. Every connection gets a read pump,
which only watches for the client going away, and a write pump that drains
its buffered send queue. Slow clients whose queue fills up are dropped.
*/
package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ldamasio/roster/internal/logger"
)

const (
	sendBuffer = 256
	writeWait  = 10 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and broadcasts payloads to all of them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	count      chan chan int
	done       chan struct{}
	upgrader   websocket.Upgrader
	log        *logger.Logger
}

// NewHub returns a hub; call Run before serving connections.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *client),
		unregister: make(chan *client),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			// The feed is read-only and carries no credentials.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With(logger.Component("feed")),
	}
}

// Run owns the client set until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug("client connected", logger.Int("clients", len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.Debug("client disconnected", logger.Int("clients", len(h.clients)))
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
					h.log.Warn("dropping slow client")
				}
			}
		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// Broadcast queues message for every connected client. It blocks until the
// hub accepts it or ctx is done.
func (h *Hub) Broadcast(ctx context.Context, message []byte) {
	select {
	case h.broadcast <- message:
	case <-ctx.Done():
	case <-h.done:
	}
}

// Clients reports how many clients are connected.
func (h *Hub) Clients(ctx context.Context) int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
	case <-ctx.Done():
		return 0
	case <-h.done:
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-ctx.Done():
		return 0
	}
}

// ServeHTTP upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", logger.Err(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump(h)
}

func (c *client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
