package web

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gobooth/internal/debug"
	"gobooth/internal/logic/session"
)

// writeTimeout bounds a single websocket write; a view that cannot drain a
// message within it is evicted.
const writeTimeout = 10 * time.Second

// clientQueue is the per-view send buffer. A full queue means the view is
// not keeping up and further messages are dropped for it, never queued.
const clientQueue = 32

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// queue hands a message to the view's writer without ever blocking the
// caller. Lagging views miss messages.
func (c *client) queue(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// writePump drains the view's queue onto the connection. It is the only
// writer for the connection. A write the deadline cuts short errors out and
// evicts the view.
func (c *client) writePump(h *Hub) {
	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.Remove(c.conn)
				return
			}
		case <-c.done:
			return
		}
	}
}

// Hub tracks the connected browser views and pushes booth updates to all
// of them. Each view has its own writer goroutine behind a bounded queue,
// so a stalled browser never blocks the session loop: slow views miss
// messages and stuck views hit the write deadline and are evicted.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
	}
}

func (h *Hub) Add(conn *websocket.Conn) {
	c := &client{
		conn: conn,
		send: make(chan []byte, clientQueue),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[conn] = c
	n := len(h.clients)
	h.mu.Unlock()
	go c.writePump(h)
	debug.Live("View connected, total: %d", n)
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	c, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(c.done)
		conn.Close()
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		debug.Live("View disconnected, total: %d", n)
	}
}

// Count returns the number of connected views. The preview loop uses it
// to skip rendering when nobody is watching.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// SendState pushes the session snapshot to every view.
func (h *Hub) SendState(snap session.Snapshot) {
	h.broadcast(stateMessage(snap))
}

// SendFrame pushes a rendered preview frame to every view.
func (h *Hub) SendFrame(dataURI string) {
	h.broadcast(frameMessage(dataURI))
}

// SendLayout pushes the finished strip to every view for the layout screen.
func (h *Hub) SendLayout(strip []session.Capture) {
	h.broadcast(layoutMessage(strip))
}

// SendTo queues a message for a single view, typically the initial state
// right after connect.
func (h *Hub) SendTo(conn *websocket.Conn, msg serverMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.mu.Lock()
	c, ok := h.clients[conn]
	h.mu.Unlock()
	if !ok {
		return errors.New("view not connected")
	}
	c.queue(data)
	return nil
}

func (h *Hub) broadcast(msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		debug.Error(err)
		return
	}

	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.queue(data)
	}
}
