package models

type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Page     int                `json:"page"`
	Size     int                `json:"size"`
	Total    int64              `json:"total"`
}
