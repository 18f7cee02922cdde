package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/chat-relay/internal/protocol"
	"github.com/cwrk-planet/chat-relay/internal/registry"
	"github.com/cwrk-planet/chat-relay/internal/transport/ws"
)

func newTestRouter(t *testing.T) (http.Handler, *registry.Registry, *ws.Hub) {
	t.Helper()
	reg := registry.New()
	hub := ws.NewHub()
	handler := protocol.NewHandler(hub, reg)
	wsServer := ws.NewServer(hub, handler, 0)
	return NewRouter(NewHandler(reg, hub), wsServer, ""), reg, hub
}

func TestRoomCount(t *testing.T) {
	router, reg, _ := newTestRouter(t)
	reg.Set("A", "alice", "lobby")
	reg.Set("B", "bob", "lobby")
	reg.Set("C", "carol", "den")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/lobby/count", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RoomCountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "lobby", resp.Room)
	assert.Equal(t, 2, resp.Count)
}

func TestRoomCount_EmptyRoom(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/nowhere/count", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RoomCountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
}

func TestStats(t *testing.T) {
	router, reg, _ := newTestRouter(t)
	reg.Set("A", "alice", "lobby")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Rooms)
	assert.Equal(t, 0, resp.Connections)
	assert.Equal(t, 1, resp.Sessions)
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
