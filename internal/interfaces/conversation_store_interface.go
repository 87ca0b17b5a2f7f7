package interfaces

import "socialChat/internal/models"

// ConversationStore is the durable record of messages and their read/delete
// flags. The store assigns ids and timestamps; conversation order is defined
// by created_at with ties broken by id.
type ConversationStore interface {
	SaveMessage(message *models.Message) (*models.Message, error)
	GetMessagesBetweenUsers(userId1, userId2 uint, page, size int) (*models.MessageListResponse, error)
	SeenMessages(readerId, otherId uint) error
	SoftDeleteMessage(messageId, requesterId uint) error
	GetConversationLastMessage(userId1, userId2 uint) (*models.Message, error)
	GetUnreadCount(readerId, otherId uint) (int, error)
	GetConversationPartners(userId uint) ([]uint, error)
}

// UserStore is the read-side of the externally owned users table.
type UserStore interface {
	GetUserById(userId uint) (*models.User, error)
}
