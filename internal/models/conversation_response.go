package models

// ConversationResponse summarizes the message history between the caller and
// one partner. Conversations are derived from the messages table, there is no
// conversation row of their own.
type ConversationResponse struct {
	Partner     *UserResponse    `json:"partner"`
	LastMessage *MessageResponse `json:"last_message"`
	Unread      int              `json:"unread"`
}

type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}
