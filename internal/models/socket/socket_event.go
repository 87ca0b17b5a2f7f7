package models

import (
	"encoding/json"
)

// SocketEvent is the inbound client frame. Payload stays raw until the
// handler knows which event it is dealing with.
type SocketEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ServerEvent is the outbound frame pushed to live connections.
type ServerEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type SeenMessagePayload struct {
	OtherUserID uint `json:"other_user_id"`
}
