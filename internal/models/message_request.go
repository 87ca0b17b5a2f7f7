package models

type MessageRequest struct {
	ReceiverID uint   `json:"receiver_id"`
	Content    string `json:"content"`
}

type AssistantMessageRequest struct {
	Content string `json:"content"`
}
