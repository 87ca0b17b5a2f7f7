package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a single direct message between two identities. Sender and
// receiver are immutable once the row exists. Deletion is soft: gorm's
// DeletedAt keeps the row but hides it from every default-scope read.
type Message struct {
	gorm.Model
	SenderID     uint       `gorm:"not null;index:idx_messages_pair" json:"sender_id"`
	ReceiverID   uint       `gorm:"not null;index:idx_messages_pair" json:"receiver_id"`
	Content      string     `gorm:"not null" json:"content"`
	SeenAt       *time.Time `json:"seen_at"`
	IsAIResponse bool       `gorm:"default:false" json:"is_ai_response"`
}

func (message *Message) ToMessageResponse() *MessageResponse {
	return &MessageResponse{
		ID:           message.ID,
		SenderID:     message.SenderID,
		ReceiverID:   message.ReceiverID,
		Content:      message.Content,
		CreatedAt:    message.CreatedAt,
		IsRead:       message.SeenAt != nil,
		SeenAt:       message.SeenAt,
		IsAIResponse: message.IsAIResponse,
	}
}
