package protocol

import "encoding/json"

// Event names on the wire. These are part of the deployed client
// contract and must not change.
const (
	EventJoinRoom                = "join_room"
	EventJoinRoomResponse        = "join_room_response"
	EventSendChatMessage         = "send_chat_message"
	EventSendChatMessageResponse = "send_chat_message_response"
	EventPlayerDisconnected      = "player_disconnected"
	EventLog                     = "log"
)

const (
	ResultSuccess = "success"
	ResultFail    = "fail"
)

// Failure reasons sent back to clients. Wording is frozen, deployed
// clients match on these strings verbatim.
const (
	failNoPayload    = "client did not send a payload"
	failJoinInternal = "Server internal error joining chat room"
	failNoRoom       = "client did not send a valid room to message"
	failNoUsername   = "client did not a valid username as a message source"
	failNoMessage    = "client did not a valid message"
)

// Inbound payloads use pointers so an absent or null field is
// distinguishable from an empty string, which is a valid value.
type joinRoomPayload struct {
	Room     *string `json:"room"`
	Username *string `json:"username"`
}

type chatMessagePayload struct {
	Room     *string `json:"room"`
	Username *string `json:"username"`
	Message  *string `json:"message"`
}

type FailResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

type JoinRoomSuccess struct {
	Result   string `json:"result"`
	Room     string `json:"room"`
	Username string `json:"username"`
	SocketID string `json:"socket_id"`
	Count    int    `json:"count"`
}

type ChatBroadcast struct {
	Result   string `json:"result"`
	Username string `json:"username"`
	Room     string `json:"room"`
	Message  string `json:"message"`
}

type PlayerDisconnected struct {
	Username string `json:"username"`
	Room     string `json:"room"`
	Count    int    `json:"count"`
	SocketID string `json:"socket_id"`
}

// decode re-marshals an already-parsed payload into a typed struct.
func decode(payload any, dst any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
