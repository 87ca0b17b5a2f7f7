package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"socialChat/internal/enums"
	"socialChat/internal/errs"
	"socialChat/internal/models"
	socketModels "socialChat/internal/models/socket"
	"socialChat/internal/repositories"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAssistantId uint = 99

type delivery struct {
	userId uint
	event  socketModels.ServerEvent
}

type recordingRouter struct {
	mu         sync.Mutex
	deliveries []delivery
}

func (rr *recordingRouter) Deliver(_ context.Context, userId uint, event socketModels.ServerEvent) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.deliveries = append(rr.deliveries, delivery{userId: userId, event: event})
}

func (rr *recordingRouter) recorded() []delivery {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	out := make([]delivery, len(rr.deliveries))
	copy(out, rr.deliveries)
	return out
}

type fakeBridge struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (fb *fakeBridge) Complete(_ context.Context, prompt string) (string, error) {
	fb.calls++
	fb.lastPrompt = prompt
	if fb.err != nil {
		return "", fb.err
	}
	return fb.reply, nil
}

type chatServiceFixture struct {
	service *ChatService
	db      *gorm.DB
	router  *recordingRouter
	bridge  *fakeBridge
}

func newChatServiceFixture(t *testing.T) *chatServiceFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "chat.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Message{}))

	seed := []*models.User{
		{Model: gorm.Model{ID: 1}, FirstName: "Alice", LastName: "A", Email: "alice@example.com", AIAccess: true},
		{Model: gorm.Model{ID: 2}, FirstName: "Bob", LastName: "B", Email: "bob@example.com"},
		{Model: gorm.Model{ID: 3}, FirstName: "Carol", LastName: "C", Email: "carol@example.com"},
		{Model: gorm.Model{ID: testAssistantId}, FirstName: "Assistant", LastName: "Bot", Email: "assistant@example.com"},
	}
	for _, user := range seed {
		require.NoError(t, db.Create(user).Error)
	}

	router := &recordingRouter{}
	bridge := &fakeBridge{reply: "assistant reply"}
	nop := zerolog.Nop()
	service := NewChatService(
		repositories.NewChatRepository(db),
		repositories.NewUserRepository(db),
		bridge,
		router,
		testAssistantId,
		&nop,
	)
	return &chatServiceFixture{service: service, db: db, router: router, bridge: bridge}
}

func (fx *chatServiceFixture) messageCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, fx.db.Model(&models.Message{}).Count(&count).Error)
	return count
}

func TestSendPersistsBeforeDelivering(t *testing.T) {
	fx := newChatServiceFixture(t)

	response, err := fx.service.Send(context.Background(), 1, 2, "hello bob")
	require.NoError(t, err)
	require.NotNil(t, response)
	assert.NotZero(t, response.ID)
	assert.Equal(t, uint(1), response.SenderID)
	assert.Equal(t, uint(2), response.ReceiverID)
	assert.False(t, response.IsRead)

	list, err := fx.service.GetConversation(1, 2, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, response.ID, list.Messages[0].ID)

	deliveries := fx.router.recorded()
	require.Len(t, deliveries, 2)
	assert.Equal(t, uint(2), deliveries[0].userId)
	assert.Equal(t, uint(1), deliveries[1].userId)
	for _, d := range deliveries {
		assert.Equal(t, enums.SOCKET_EVENT_NEW_MESSAGE, d.event.Event)
		assert.Equal(t, response, d.event.Payload)
	}
}

func TestSendRejectsInvalidInput(t *testing.T) {
	fx := newChatServiceFixture(t)

	cases := []struct {
		name       string
		senderId   uint
		receiverId uint
		content    string
	}{
		{"empty content", 1, 2, ""},
		{"zero sender", 0, 2, "hi"},
		{"zero receiver", 1, 0, "hi"},
		{"self message", 1, 1, "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.service.Send(context.Background(), tc.senderId, tc.receiverId, tc.content)
			assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		})
	}

	assert.Equal(t, int64(0), fx.messageCount(t))
	assert.Empty(t, fx.router.recorded())
}

func TestSendKeepsConversationOrder(t *testing.T) {
	fx := newChatServiceFixture(t)

	for _, content := range []string{"one", "two", "three"} {
		_, err := fx.service.Send(context.Background(), 1, 2, content)
		require.NoError(t, err)
	}

	list, err := fx.service.GetConversation(2, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Messages, 3)
	assert.Equal(t, "one", list.Messages[0].Content)
	assert.Equal(t, "two", list.Messages[1].Content)
	assert.Equal(t, "three", list.Messages[2].Content)
}

func TestAssistantSendRequiresEntitlement(t *testing.T) {
	fx := newChatServiceFixture(t)

	// Bob has no assistant access.
	_, err := fx.service.Send(context.Background(), 2, testAssistantId, "help me")
	assert.ErrorIs(t, err, errs.ErrForbidden)

	assert.Equal(t, int64(0), fx.messageCount(t))
	assert.Empty(t, fx.router.recorded())
	assert.Zero(t, fx.bridge.calls)
}

func TestAssistantSendUnknownSenderIsForbidden(t *testing.T) {
	fx := newChatServiceFixture(t)

	_, err := fx.service.Send(context.Background(), 777, testAssistantId, "help me")
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, int64(0), fx.messageCount(t))
}

func TestAssistantSendPersistsPromptAndReply(t *testing.T) {
	fx := newChatServiceFixture(t)
	fx.bridge.reply = "here is your answer"

	response, err := fx.service.Send(context.Background(), 1, testAssistantId, "what is the answer")
	require.NoError(t, err)
	assert.Equal(t, testAssistantId, response.SenderID)
	assert.Equal(t, uint(1), response.ReceiverID)
	assert.Equal(t, "here is your answer", response.Content)
	assert.True(t, response.IsAIResponse)
	assert.Equal(t, "what is the answer", fx.bridge.lastPrompt)

	list, err := fx.service.GetConversation(1, testAssistantId, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Messages, 2)
	assert.Equal(t, "what is the answer", list.Messages[0].Content)
	assert.False(t, list.Messages[0].IsAIResponse)
	assert.Equal(t, "here is your answer", list.Messages[1].Content)
	assert.True(t, list.Messages[1].IsAIResponse)

	// The reply goes to the sender only, no echo to the assistant identity.
	deliveries := fx.router.recorded()
	require.Len(t, deliveries, 1)
	assert.Equal(t, uint(1), deliveries[0].userId)
	assert.Equal(t, response, deliveries[0].event.Payload)
}

func TestAssistantFailureKeepsPrompt(t *testing.T) {
	fx := newChatServiceFixture(t)
	fx.bridge.err = errs.ErrAssistantUnavailable

	_, err := fx.service.Send(context.Background(), 1, testAssistantId, "doomed prompt")
	assert.ErrorIs(t, err, errs.ErrAssistantUnavailable)

	// The prompt survives the bridge failure, the reply never exists.
	list, listErr := fx.service.GetConversation(1, testAssistantId, 1, 10)
	require.NoError(t, listErr)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, "doomed prompt", list.Messages[0].Content)
	assert.Empty(t, fx.router.recorded())
}

func TestSeenMessagesValidation(t *testing.T) {
	fx := newChatServiceFixture(t)

	assert.ErrorIs(t, fx.service.SeenMessages(0, 2), errs.ErrInvalidRequest)
	assert.ErrorIs(t, fx.service.SeenMessages(1, 1), errs.ErrInvalidRequest)
	assert.NoError(t, fx.service.SeenMessages(1, 2))
}

func TestDeleteMessagePassesThroughOutcome(t *testing.T) {
	fx := newChatServiceFixture(t)
	response, err := fx.service.Send(context.Background(), 1, 2, "to delete")
	require.NoError(t, err)

	assert.ErrorIs(t, fx.service.DeleteMessage(response.ID, 3), errs.ErrForbidden)
	assert.ErrorIs(t, fx.service.DeleteMessage(999, 1), errs.ErrMessageNotFound)
	assert.NoError(t, fx.service.DeleteMessage(response.ID, 1))
	assert.NoError(t, fx.service.DeleteMessage(response.ID, 1))

	list, err := fx.service.GetConversation(1, 2, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list.Messages)
}

func TestGetUserConversationsSummaries(t *testing.T) {
	fx := newChatServiceFixture(t)
	_, err := fx.service.Send(context.Background(), 1, 2, "hi bob")
	require.NoError(t, err)
	_, err = fx.service.Send(context.Background(), 3, 1, "hi alice")
	require.NoError(t, err)
	_, err = fx.service.Send(context.Background(), 3, 1, "are you there")
	require.NoError(t, err)

	result, err := fx.service.GetUserConversations(1)
	require.NoError(t, err)
	require.Len(t, result.Conversations, 2)

	// Carol wrote last, her conversation leads.
	assert.Equal(t, uint(3), result.Conversations[0].Partner.ID)
	assert.Equal(t, "are you there", result.Conversations[0].LastMessage.Content)
	assert.Equal(t, 2, result.Conversations[0].Unread)

	assert.Equal(t, uint(2), result.Conversations[1].Partner.ID)
	assert.Equal(t, 0, result.Conversations[1].Unread)
}
