package models

import (
	"encoding/json"
)

const (
	REDIS_CHANNEL_CHAT    = "chat_events"
	REDIS_CHANNEL_OBSERVE = "observe_events"
)

// RedisPublishedMessage is the envelope carried on the pub/sub channels so
// deliveries reach connections held by other instances. Origin identifies the
// publishing instance; subscribers skip their own envelopes.
type RedisPublishedMessage struct {
	Origin     string          `json:"origin"`
	ReceiverID uint            `json:"receiver_id"`
	Event      string          `json:"event"`
	Payload    json.RawMessage `json:"payload"`
}
