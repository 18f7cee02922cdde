package ws

import (
	"sync"

	"github.com/cwrk-planet/chat-relay/internal/metrics"
)

type Conn interface {
	ID() string
	Send(msg Message) error
	Close() error
}

// Hub tracks live connections and their room subscriptions. It is the
// transport the protocol handler emits through: a room exists exactly
// as long as at least one connection is subscribed to it.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn
	rooms map[string]map[string]struct{} // room -> set of conn ids
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]Conn),
		rooms: make(map[string]map[string]struct{}),
	}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[c.ID()] = c
	metrics.ActiveConnections.Inc()
}

// Remove drops the connection and every room subscription it held.
func (h *Hub) Remove(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[connID]; !ok {
		return
	}
	delete(h.conns, connID)
	for room, ids := range h.rooms {
		delete(ids, connID)
		if len(ids) == 0 {
			delete(h.rooms, room)
		}
	}
	metrics.ActiveConnections.Dec()
}

// Join subscribes connID to room. Unknown connections are ignored, so
// a membership check after Join reports the failure.
func (h *Hub) Join(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[connID]; !ok {
		return
	}
	ids, ok := h.rooms[room]
	if !ok {
		ids = make(map[string]struct{})
		h.rooms[room] = ids
	}
	ids[connID] = struct{}{}
}

func (h *Hub) Leave(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ids, ok := h.rooms[room]; ok {
		delete(ids, connID)
		if len(ids) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Members returns the ids of every connection subscribed to room.
func (h *Hub) Members(room string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := h.rooms[room]
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}

func (h *Hub) Emit(connID, event string, payload any) {
	h.mu.RLock()
	c, ok := h.conns[connID]
	h.mu.RUnlock()

	if ok {
		_ = c.Send(Message{Type: event, Payload: payload}) // best-effort
	}
}

// EmitToRoom fans out to every subscribed connection, sender included.
// Delivery is best-effort with no atomicity across recipients.
func (h *Hub) EmitToRoom(room, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids, ok := h.rooms[room]
	if !ok {
		return
	}
	msg := Message{Type: event, Payload: payload}
	for id := range ids {
		if c, ok := h.conns[id]; ok {
			_ = c.Send(msg)
		}
	}
}

func (h *Hub) EmitAll(event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{Type: event, Payload: payload}
	for _, c := range h.conns {
		_ = c.Send(msg)
	}
}

// Stats reports the current room and connection totals.
func (h *Hub) Stats() (rooms, conns int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms), len(h.conns)
}
