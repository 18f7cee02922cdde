package ws

// Message is the wire envelope for every frame in either direction.
// The protocol event name rides in Type.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}
