package http

import (
	"encoding/json"
	"net/http"

	"github.com/cwrk-planet/chat-relay/internal/registry"
	"github.com/cwrk-planet/chat-relay/internal/transport/ws"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	registry *registry.Registry
	hub      *ws.Hub
}

func NewHandler(reg *registry.Registry, hub *ws.Hub) *Handler {
	return &Handler{registry: reg, hub: hub}
}

type RoomCountResponse struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
	Sessions    int `json:"sessions"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /rooms/{room}/count
func (h *Handler) RoomCount(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")

	writeJSON(w, http.StatusOK, RoomCountResponse{
		Room:  room,
		Count: h.registry.CountInRoom(room),
	})
}

// GET /stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rooms, conns := h.hub.Stats()

	writeJSON(w, http.StatusOK, StatsResponse{
		Rooms:       rooms,
		Connections: conns,
		Sessions:    h.registry.Len(),
	})
}
