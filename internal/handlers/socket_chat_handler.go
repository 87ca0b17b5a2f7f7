package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"socialChat/internal/enums"
	"socialChat/internal/errs"
	"socialChat/internal/models"
	socketModels "socialChat/internal/models/socket"
	"socialChat/internal/msgs"
	"socialChat/internal/realtime"
	"socialChat/internal/services"
	"socialChat/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// SocketChatHandler owns the chat socket endpoint. Upgrading with a valid
// token is the join announcement: the connection is registered under the
// token identity and starts receiving new_message pushes until it closes.
type SocketChatHandler struct {
	ctx         context.Context
	upgrader    websocket.Upgrader
	registry    *realtime.Registry
	chatService *services.ChatService
	jwtSecret   []byte
	logger      *zerolog.Logger
}

func NewSocketChatHandler(
	ctx context.Context,
	registry *realtime.Registry,
	chatService *services.ChatService,
	jwtSecret []byte,
	logger *zerolog.Logger,
) *SocketChatHandler {
	return &SocketChatHandler{
		ctx:      ctx,
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		chatService: chatService,
		jwtSecret:   jwtSecret,
		logger:      logger,
	}
}

func (sch *SocketChatHandler) HandleSocketChatRoute(ctx *gin.Context) {
	jwtToken := ctx.Request.Header.Get("Authorization")
	if jwtToken == "" {
		jwtToken = ctx.Query("token")
	}
	if jwtToken == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	claims, err := utils.VerifyToken(jwtToken, sch.jwtSecret)
	if err != nil || claims.ID == 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	sch.handleConnection(ctx, claims)
}

func (sch *SocketChatHandler) handleConnection(ctx *gin.Context, claims *models.Claims) {
	ws, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		sch.logger.Error().Err(err).Msg("failed to upgrade connection")
		return
	}

	client := newSocketClient(claims.ID, ws)
	sch.registry.Join(claims.ID, client)
	sch.logger.Info().Uint("user_id", claims.ID).Str("connection_id", client.ID()).Msg("client joined")

	go client.writePump(sch.logger)

	sch.readLoop(client)

	sch.registry.Leave(client)
	_ = client.Close()
	sch.logger.Info().Uint("user_id", claims.ID).Str("connection_id", client.ID()).Msg("client left")
}

// readLoop drains inbound frames until the connection dies. Every
// send_message frame maps to exactly one ChatService.Send call.
func (sch *SocketChatHandler) readLoop(client *socketClient) {
	for {
		var event socketModels.SocketEvent
		if err := client.conn.ReadJSON(&event); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sch.logger.Debug().Err(err).Uint("user_id", client.UserID()).Msg("socket read ended")
			}
			return
		}

		switch event.Event {
		case enums.SOCKET_EVENT_SEND_MESSAGE:
			sch.handleSendMessageEvent(client, event.Payload)
		case enums.SOCKET_EVENT_SEEN_MESSAGE:
			sch.handleSeenMessageEvent(client, event.Payload)
		default:
			sch.logger.Warn().Str("event", event.Event).Msg("unknown socket event")
		}
	}
}

func (sch *SocketChatHandler) handleSendMessageEvent(client *socketClient, payload json.RawMessage) {
	var messageRequest models.MessageRequest
	if err := json.Unmarshal(payload, &messageRequest); err != nil {
		sch.logger.Warn().Err(err).Msg("invalid send_message payload")
		return
	}

	if _, err := sch.chatService.Send(sch.ctx, client.UserID(), messageRequest.ReceiverID, messageRequest.Content); err != nil {
		sch.logger.Warn().Err(err).Uint("sender_id", client.UserID()).Msg("socket send rejected")
	}
}

func (sch *SocketChatHandler) handleSeenMessageEvent(client *socketClient, payload json.RawMessage) {
	var seenData socketModels.SeenMessagePayload
	if err := json.Unmarshal(payload, &seenData); err != nil {
		sch.logger.Warn().Err(err).Msg("invalid seen_message payload")
		return
	}

	if err := sch.chatService.SeenMessages(client.UserID(), seenData.OtherUserID); err != nil {
		sch.logger.Warn().Err(err).Uint("reader_id", client.UserID()).Msg("seen event rejected")
	}
}
