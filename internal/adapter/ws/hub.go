// Package ws streams freshly recorded activity-log entries to connected
// admin clients.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the SPA origin; token auth already
	// gates the route.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	// sendBuffer entries may queue per client before it counts as stalled.
	sendBuffer = 64
	writeWait  = 10 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan map[string]any
}

type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// Subscribe upgrades the request and registers the connection. Each client
// gets its own write goroutine fed from a buffered channel; the read loop
// only exists to notice the peer going away.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := &client{conn: conn, send: make(chan map[string]any, sendBuffer)}
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	go h.writeLoop(cl)
	go h.readLoop(cl)
	return nil
}

// Publish fans an entry out to every subscriber without blocking: each
// payload goes into the client's buffered channel, and a client whose
// buffer is full is dropped on the spot. Audit recording calls this on the
// request path, so it must never wait on a peer.
func (h *Hub) Publish(entry domain.ActivityLog) {
	payload := map[string]any{
		"id":          entry.ID,
		"action":      string(entry.Action),
		"performedBy": entry.PerformedBy,
		"status":      string(entry.Status),
		"createdAt":   entry.CreatedAt,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- payload:
		default:
			zap.L().Debug("dropping stalled activity feed subscriber")
			h.removeLocked(cl)
		}
	}
}

// Count reports the number of live subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) writeLoop(cl *client) {
	defer cl.conn.Close()
	for payload := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteJSON(payload); err != nil {
			zap.L().Debug("dropping dead activity feed subscriber", zap.Error(err))
			h.drop(cl)
			return
		}
	}
}

func (h *Hub) readLoop(cl *client) {
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			h.drop(cl)
			return
		}
	}
}

func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	h.removeLocked(cl)
	h.mu.Unlock()
}

// removeLocked unregisters the client and closes its send channel, which
// ends the write loop. The channel is only ever closed here, under h.mu and
// guarded by the map lookup, so a double drop is a no-op and Publish can
// never send on a closed channel.
func (h *Hub) removeLocked(cl *client) {
	if !h.clients[cl] {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
}
