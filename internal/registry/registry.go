package registry

import (
	"sync"

	"github.com/cwrk-planet/chat-relay/internal/domain"
)

// Registry is the shared mapping from connection id to session state.
// All membership bookkeeping goes through it; it performs no I/O and
// holds no transport references.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func New() *Registry {
	return &Registry{sessions: make(map[string]domain.Session)}
}

// Set inserts or overwrites the session for connID.
func (r *Registry) Set(connID, username, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[connID] = domain.Session{
		ConnID:   connID,
		Username: username,
		Room:     room,
	}
}

// Get returns the session for connID, if any.
func (r *Registry) Get(connID string) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[connID]
	return s, ok
}

// Remove deletes the session for connID if present and returns it, so
// callers can build disconnect notifications. Idempotent.
func (r *Registry) Remove(connID string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if ok {
		delete(r.sessions, connID)
	}
	return s, ok
}

// CountInRoom returns the number of sessions currently in room.
func (r *Registry) CountInRoom(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.sessions {
		if s.Room == room {
			n++
		}
	}
	return n
}

// Len returns the total number of active sessions across all rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
