package services

import (
	"context"
	"errors"
	"socialChat/internal/enums"
	"socialChat/internal/errs"
	"socialChat/internal/interfaces"
	"socialChat/internal/models"
	socketModels "socialChat/internal/models/socket"

	"github.com/rs/zerolog"
)

// ChatService orchestrates a send: validate, persist, then route. A message
// is never routed before its append returned, so anything a live connection
// sees is already durable. Routing misses are not errors.
type ChatService struct {
	store       interfaces.ConversationStore
	users       interfaces.UserStore
	bridge      interfaces.AssistantBridge
	router      interfaces.DeliveryRouter
	assistantId uint
	logger      *zerolog.Logger
}

func NewChatService(
	store interfaces.ConversationStore,
	users interfaces.UserStore,
	bridge interfaces.AssistantBridge,
	router interfaces.DeliveryRouter,
	assistantId uint,
	logger *zerolog.Logger,
) *ChatService {
	return &ChatService{
		store:       store,
		users:       users,
		bridge:      bridge,
		router:      router,
		assistantId: assistantId,
		logger:      logger,
	}
}

// AssistantId exposes the reserved assistant identity for transport handlers.
func (cs *ChatService) AssistantId() uint {
	return cs.assistantId
}

// Send validates and persists one message, then delivers it. Messages
// addressed to the reserved assistant identity take the assistant branch
// instead. Returns the persisted message on success.
func (cs *ChatService) Send(ctx context.Context, senderId, receiverId uint, content string) (*models.MessageResponse, error) {
	if senderId == 0 || receiverId == 0 || content == "" {
		return nil, errs.ErrInvalidRequest
	}
	if senderId == receiverId {
		return nil, errs.ErrInvalidRequest
	}

	if receiverId == cs.assistantId {
		return cs.sendToAssistant(ctx, senderId, content)
	}

	message := &models.Message{
		SenderID:   senderId,
		ReceiverID: receiverId,
		Content:    content,
	}
	saved, err := cs.store.SaveMessage(message)
	if err != nil {
		cs.logger.Error().Err(err).Uint("sender_id", senderId).Msg("failed to persist message")
		return nil, errs.ErrStoreUnavailable
	}

	response := saved.ToMessageResponse()
	event := socketModels.ServerEvent{Event: enums.SOCKET_EVENT_NEW_MESSAGE, Payload: response}
	cs.router.Deliver(ctx, receiverId, event)
	// Echo to the sender so all of the sender's live sessions stay in sync.
	cs.router.Deliver(ctx, senderId, event)

	return response, nil
}

// sendToAssistant persists the prompt, asks the bridge for a reply, persists
// the reply under the assistant identity, and delivers it to the sender only.
// The prompt and the reply are two separate inserts: a bridge failure leaves
// the prompt durably recorded and surfaces as assistant unavailable.
func (cs *ChatService) sendToAssistant(ctx context.Context, senderId uint, content string) (*models.MessageResponse, error) {
	sender, err := cs.users.GetUserById(senderId)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrForbidden
		}
		cs.logger.Error().Err(err).Uint("sender_id", senderId).Msg("failed to load sender for entitlement check")
		return nil, errs.ErrStoreUnavailable
	}
	if !sender.AIAccess {
		return nil, errs.ErrForbidden
	}

	prompt := &models.Message{
		SenderID:   senderId,
		ReceiverID: cs.assistantId,
		Content:    content,
	}
	if _, err := cs.store.SaveMessage(prompt); err != nil {
		cs.logger.Error().Err(err).Uint("sender_id", senderId).Msg("failed to persist assistant prompt")
		return nil, errs.ErrStoreUnavailable
	}

	replyText, err := cs.bridge.Complete(ctx, content)
	if err != nil {
		cs.logger.Error().Err(err).Uint("sender_id", senderId).Msg("assistant completion failed, prompt kept")
		return nil, errs.ErrAssistantUnavailable
	}

	reply := &models.Message{
		SenderID:     cs.assistantId,
		ReceiverID:   senderId,
		Content:      replyText,
		IsAIResponse: true,
	}
	savedReply, err := cs.store.SaveMessage(reply)
	if err != nil {
		cs.logger.Error().Err(err).Uint("sender_id", senderId).Msg("failed to persist assistant reply")
		return nil, errs.ErrStoreUnavailable
	}

	response := savedReply.ToMessageResponse()
	// The assistant has no connections of its own, only the sender is notified.
	cs.router.Deliver(ctx, senderId, socketModels.ServerEvent{
		Event:   enums.SOCKET_EVENT_NEW_MESSAGE,
		Payload: response,
	})

	return response, nil
}

// SeenMessages marks every unread message from otherId to readerId as read.
// Read state is pulled by clients on the next history fetch, nothing is
// routed from here.
func (cs *ChatService) SeenMessages(readerId, otherId uint) error {
	if readerId == 0 || otherId == 0 || readerId == otherId {
		return errs.ErrInvalidRequest
	}
	if err := cs.store.SeenMessages(readerId, otherId); err != nil {
		cs.logger.Error().Err(err).Uint("reader_id", readerId).Msg("failed to mark messages seen")
		return errs.ErrStoreUnavailable
	}
	return nil
}

func (cs *ChatService) DeleteMessage(messageId, requesterId uint) error {
	if messageId == 0 || requesterId == 0 {
		return errs.ErrInvalidRequest
	}
	err := cs.store.SoftDeleteMessage(messageId, requesterId)
	if err != nil {
		if errors.Is(err, errs.ErrMessageNotFound) || errors.Is(err, errs.ErrForbidden) {
			return err
		}
		cs.logger.Error().Err(err).Uint("message_id", messageId).Msg("failed to delete message")
		return errs.ErrStoreUnavailable
	}
	return nil
}

func (cs *ChatService) GetConversation(userId1, userId2 uint, page, size int) (*models.MessageListResponse, error) {
	if userId1 == 0 || userId2 == 0 {
		return nil, errs.ErrInvalidRequest
	}
	messages, err := cs.store.GetMessagesBetweenUsers(userId1, userId2, page, size)
	if err != nil {
		cs.logger.Error().Err(err).Msg("failed to fetch conversation")
		return nil, errs.ErrStoreUnavailable
	}
	return messages, nil
}

// GetUserConversations summarizes every conversation the user takes part in:
// partner, last message, unread count.
func (cs *ChatService) GetUserConversations(userId uint) (*models.ConversationListResponse, error) {
	if userId == 0 {
		return nil, errs.ErrInvalidRequest
	}
	partners, err := cs.store.GetConversationPartners(userId)
	if err != nil {
		cs.logger.Error().Err(err).Uint("user_id", userId).Msg("failed to list conversation partners")
		return nil, errs.ErrStoreUnavailable
	}

	conversations := make([]models.ConversationResponse, 0, len(partners))
	for _, partnerId := range partners {
		partner, err := cs.users.GetUserById(partnerId)
		if err != nil {
			cs.logger.Warn().Err(err).Uint("partner_id", partnerId).Msg("skipping conversation with unknown partner")
			continue
		}
		lastMessage, err := cs.store.GetConversationLastMessage(userId, partnerId)
		if err != nil {
			continue
		}
		unread, err := cs.store.GetUnreadCount(userId, partnerId)
		if err != nil {
			unread = 0
		}
		conversations = append(conversations, models.ConversationResponse{
			Partner:     partner.ToUserResponse(),
			LastMessage: lastMessage.ToMessageResponse(),
			Unread:      unread,
		})
	}

	return &models.ConversationListResponse{Conversations: conversations}, nil
}
