package protocol

import (
	"log/slog"
	"slices"

	"github.com/cwrk-planet/chat-relay/internal/metrics"
	"github.com/cwrk-planet/chat-relay/internal/registry"
)

// Transport is what the handler needs from the connection layer:
// per-connection unicast, per-room multicast, global emit, room
// subscription and a membership query. Connection ids are opaque
// strings assigned by the transport.
type Transport interface {
	Emit(connID, event string, payload any)
	EmitToRoom(room, event string, payload any)
	EmitAll(event string, payload any)
	Join(connID, room string)
	Leave(connID, room string)
	Members(room string) []string
}

// Handler runs the room protocol state machine for every connection.
// All failures are terminal responses unicast back to the requester;
// no event aborts the handler.
type Handler struct {
	transport Transport
	registry  *registry.Registry
}

func NewHandler(t Transport, reg *registry.Registry) *Handler {
	return &Handler{transport: t, registry: reg}
}

// Connected is called by the transport once per new connection.
func (h *Handler) Connected(connID string) {
	h.serverLog("a page connected to the server: " + connID)
}

// HandleEvent dispatches one inbound client event.
func (h *Handler) HandleEvent(connID, event string, payload any) {
	metrics.CommandsTotal.WithLabelValues(event).Inc()

	switch event {
	case EventJoinRoom:
		h.joinRoom(connID, payload)
	case EventSendChatMessage:
		h.sendChatMessage(connID, payload)
	default:
		slog.Debug("ignoring unknown event", "conn", connID, "event", event)
	}
}

func (h *Handler) joinRoom(connID string, payload any) {
	h.serverLog("Server received a command", "'join_room'", stringify(payload))

	fail := func(reason string) {
		metrics.CommandFailuresTotal.WithLabelValues(EventJoinRoom).Inc()
		resp := FailResponse{Result: ResultFail, Message: reason}
		h.transport.Emit(connID, EventJoinRoomResponse, resp)
		h.serverLog("join_room command failed", stringify(resp))
	}

	if payload == nil {
		fail(failNoPayload)
		return
	}
	var p joinRoomPayload
	if err := decode(payload, &p); err != nil {
		fail(failNoPayload)
		return
	}
	if p.Room == nil {
		fail(failNoPayload)
		return
	}
	if p.Username == nil {
		fail(failNoPayload)
		return
	}
	room, username := *p.Room, *p.Username

	prev, hadPrev := h.registry.Get(connID)

	h.transport.Join(connID, room)

	// Verify the subscription actually took before touching the
	// registry; a failed join is reported, never retried.
	members := h.transport.Members(room)
	if !slices.Contains(members, connID) {
		fail(failJoinInternal)
		return
	}

	// One room per session: revoke the previous subscription before
	// the registry entry is overwritten, so transport membership and
	// registry state never diverge.
	if hadPrev && prev.Room != room {
		h.transport.Leave(connID, prev.Room)
	}

	h.registry.Set(connID, username, room)

	resp := JoinRoomSuccess{
		Result:   ResultSuccess,
		Room:     room,
		Username: username,
		SocketID: connID,
		Count:    len(members),
	}
	metrics.BroadcastsTotal.WithLabelValues(EventJoinRoomResponse).Inc()
	h.transport.EmitToRoom(room, EventJoinRoomResponse, resp)
	h.serverLog("join_room succeeded", stringify(resp))
}

func (h *Handler) sendChatMessage(connID string, payload any) {
	h.serverLog("Server received a command", "'send_chat_message'", stringify(payload))

	fail := func(reason string) {
		metrics.CommandFailuresTotal.WithLabelValues(EventSendChatMessage).Inc()
		resp := FailResponse{Result: ResultFail, Message: reason}
		h.transport.Emit(connID, EventSendChatMessageResponse, resp)
		h.serverLog("send_chat_message command failed", stringify(resp))
	}

	if payload == nil {
		fail(failNoPayload)
		return
	}
	var p chatMessagePayload
	if err := decode(payload, &p); err != nil {
		fail(failNoPayload)
		return
	}
	if p.Room == nil {
		fail(failNoRoom)
		return
	}
	if p.Username == nil {
		fail(failNoUsername)
		return
	}
	if p.Message == nil {
		fail(failNoMessage)
		return
	}

	// Stateless relative to membership: no registry mutation.
	resp := ChatBroadcast{
		Result:   ResultSuccess,
		Username: *p.Username,
		Room:     *p.Room,
		Message:  *p.Message,
	}
	metrics.BroadcastsTotal.WithLabelValues(EventSendChatMessageResponse).Inc()
	h.transport.EmitToRoom(*p.Room, EventSendChatMessageResponse, resp)
	h.serverLog("send_chat_message command succeeded", stringify(resp))
}

// Disconnected is called by the transport after the connection has
// been dropped from its room subscriptions. The registry entry is
// removed before the broadcast goes out, so racing membership reads
// observe the post-disconnect state.
func (h *Handler) Disconnected(connID string) {
	h.serverLog("a page disconnected from the server: " + connID)

	sess, ok := h.registry.Remove(connID)
	if !ok {
		return
	}

	out := PlayerDisconnected{
		Username: sess.Username,
		Room:     sess.Room,
		Count:    h.registry.Len(),
		SocketID: connID,
	}
	metrics.BroadcastsTotal.WithLabelValues(EventPlayerDisconnected).Inc()
	h.transport.EmitToRoom(sess.Room, EventPlayerDisconnected, out)
	h.serverLog("player_disconnected succeeded", stringify(out))
}

// serverLog mirrors every diagnostic line to the process log and to
// the "log" debug event on every active connection.
func (h *Handler) serverLog(messages ...string) {
	h.transport.EmitAll(EventLog, []string{"**** Message from the server:\n"})
	for _, m := range messages {
		h.transport.EmitAll(EventLog, []string{"****\t" + m})
		slog.Info(m)
	}
}
