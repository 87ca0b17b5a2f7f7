package repositories

import (
	"errors"
	"socialChat/internal/errs"
	"socialChat/internal/models"
	"socialChat/internal/utils"
	"time"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

func (chr *ChatRepository) SaveMessage(message *models.Message) (*models.Message, error) {
	if err := chr.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessagesBetweenUsers returns the non-deleted history of the pair,
// ordered by created_at with ties broken by id. Soft-deleted rows never
// appear, gorm's default scope filters them.
func (chr *ChatRepository) GetMessagesBetweenUsers(userId1, userId2 uint, page, size int) (*models.MessageListResponse, error) {
	var messages []models.Message
	var total int64

	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userId1, userId2, userId2, userId1).
			Order("created_at ASC, id ASC").
			Find(&messages).Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.Message{}).
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userId1, userId2, userId2, userId1).
			Count(&total).Error; err != nil {
			return err
		}

		return nil
	})
	if transactionErr != nil {
		return nil, transactionErr
	}

	messageResponses := make([]*models.MessageResponse, 0, len(messages))
	for i := range messages {
		messageResponses = append(messageResponses, messages[i].ToMessageResponse())
	}

	return &models.MessageListResponse{
		Messages: messageResponses,
		Page:     page,
		Size:     size,
		Total:    total,
	}, nil
}

// SeenMessages marks every unread message from otherId to readerId as read.
// Only the receiver side is touched and a read is never undone. Zero affected
// rows is a valid no-op.
func (chr *ChatRepository) SeenMessages(readerId, otherId uint) error {
	return chr.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND seen_at IS NULL", otherId, readerId).
		Update("seen_at", time.Now()).Error
}

// SoftDeleteMessage hides one message from all subsequent reads. Only a
// conversation participant may delete; deleting an already-deleted message is
// a no-op so the call stays idempotent.
func (chr *ChatRepository) SoftDeleteMessage(messageId, requesterId uint) error {
	var message models.Message
	result := chr.db.Unscoped().Where("id = ?", messageId).First(&message)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return errs.ErrMessageNotFound
		}
		return result.Error
	}
	if message.SenderID != requesterId && message.ReceiverID != requesterId {
		return errs.ErrForbidden
	}
	if message.DeletedAt.Valid {
		return nil
	}
	return chr.db.Delete(&models.Message{}, messageId).Error
}

func (chr *ChatRepository) GetConversationLastMessage(userId1, userId2 uint) (*models.Message, error) {
	var message models.Message
	if err := chr.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userId1, userId2, userId2, userId1).
		Order("created_at DESC, id DESC").
		First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (chr *ChatRepository) GetUnreadCount(readerId, otherId uint) (int, error) {
	var count int = 0
	result := chr.db.Raw(
		"SELECT COUNT(*) FROM messages WHERE sender_id = ? AND receiver_id = ? AND seen_at IS NULL AND deleted_at IS NULL",
		otherId,
		readerId,
	).Scan(&count)

	if err := result.Error; err != nil {
		return 0, err
	}

	return count, nil
}

// GetConversationPartners lists the distinct identities userId has exchanged
// messages with, most recent conversation first.
func (chr *ChatRepository) GetConversationPartners(userId uint) ([]uint, error) {
	var partners []uint
	result := chr.db.Raw(
		`SELECT partner_id FROM (
			SELECT CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS partner_id,
			       MAX(created_at) AS last_activity
			FROM messages
			WHERE (sender_id = ? OR receiver_id = ?) AND deleted_at IS NULL
			GROUP BY partner_id
		) AS conversations ORDER BY last_activity DESC`,
		userId,
		userId,
		userId,
	).Scan(&partners)

	if err := result.Error; err != nil {
		return nil, err
	}

	return partners, nil
}
