package models

import "time"

type MessageResponse struct {
	ID           uint       `json:"id"`
	SenderID     uint       `json:"sender_id"`
	ReceiverID   uint       `json:"receiver_id"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"created_at"`
	IsRead       bool       `json:"is_read"`
	SeenAt       *time.Time `json:"seen_at"`
	IsAIResponse bool       `json:"is_ai_response"`
}
