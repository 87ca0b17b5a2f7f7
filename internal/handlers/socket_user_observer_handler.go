package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"socialChat/internal/enums"
	"socialChat/internal/errs"
	"socialChat/internal/models"
	redisModels "socialChat/internal/models/redis"
	socketModels "socialChat/internal/models/socket"
	obsSocketModels "socialChat/internal/models/socket/observing"
	"socialChat/internal/msgs"
	"socialChat/internal/realtime"
	"socialChat/internal/services"
	"socialChat/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const onlineStatusCacheTTL = 24 * time.Hour

// SocketUserObservingHandler lets a connected user watch the online status of
// chosen identities. Status flips are persisted, cached in Redis, and
// broadcast over the observe channel so watchers on every instance see them.
type SocketUserObservingHandler struct {
	ctx         context.Context
	upgrader    websocket.Upgrader
	watchers    *realtime.Registry
	userService *services.UserService
	redis       *redis.Client
	jwtSecret   []byte
	logger      *zerolog.Logger
}

func NewSocketUserObservingHandler(
	ctx context.Context,
	redis *redis.Client,
	userService *services.UserService,
	jwtSecret []byte,
	logger *zerolog.Logger,
) *SocketUserObservingHandler {
	suoh := &SocketUserObservingHandler{
		ctx:      ctx,
		watchers: realtime.NewRegistry(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		userService: userService,
		redis:       redis,
		jwtSecret:   jwtSecret,
		logger:      logger,
	}
	go suoh.handleRedisMessages()
	return suoh
}

func (suoh *SocketUserObservingHandler) HandleSocketUserObservingRoute(ctx *gin.Context) {
	claims, err := suoh.authorize(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ws, err := suoh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		suoh.logger.Error().Err(err).Msg("failed to upgrade observing connection")
		return
	}

	client := newSocketClient(claims.ID, ws)
	go client.writePump(suoh.logger)

	suoh.setOnlineStatus(claims.ID, true)

	// The watcher subscribes under every identity it wants to observe and
	// gets the current status of each one up front.
	notifiers, err := suoh.retrieveNotifiersFromQuery(ctx)
	if err == nil {
		for _, notifierId := range notifiers {
			suoh.watchers.Join(notifierId, client)
			isOnline, lastSeen := suoh.currentStatus(notifierId)
			_ = client.Enqueue(socketModels.ServerEvent{
				Event: enums.SOCKET_EVENT_NOTIFY,
				Payload: obsSocketModels.ObservingSocketPayload{
					UserId:     notifierId,
					IsOnline:   isOnline,
					LastSeenAt: lastSeen,
				},
			})
		}
	}

	suoh.keepSocketAlive(client)

	suoh.watchers.Leave(client)
	_ = client.Close()
	suoh.setOnlineStatus(claims.ID, false)
}

func (suoh *SocketUserObservingHandler) authorize(ctx *gin.Context) (*models.Claims, error) {
	jwtToken := ctx.Request.Header.Get("Authorization")
	if jwtToken == "" {
		jwtToken = ctx.Query("token")
	}
	if jwtToken == "" {
		return nil, errs.ErrUnauthorized
	}
	claims, err := utils.VerifyToken(jwtToken, suoh.jwtSecret)
	if err != nil || claims.ID == 0 {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}

func (suoh *SocketUserObservingHandler) keepSocketAlive(client *socketClient) {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (suoh *SocketUserObservingHandler) setOnlineStatus(userId uint, status bool) {
	_, lastSeen, err := suoh.userService.SetUserOnlineStatus(userId, status)
	if err != nil {
		suoh.logger.Error().Err(err).Uint("user_id", userId).Msg("failed to set online status")
		return
	}

	if err := suoh.updateUserOnlineStatusInCache(userId, status, *lastSeen); err != nil {
		suoh.logger.Warn().Err(err).Uint("user_id", userId).Msg("failed to cache online status")
	}

	redisEvent := obsSocketModels.ObservingSocketEvent{
		Event: enums.SOCKET_EVENT_NOTIFY,
		Payload: obsSocketModels.ObservingSocketPayload{
			UserId:     userId,
			IsOnline:   status,
			LastSeenAt: lastSeen,
		},
	}
	jsonEvent, err := json.Marshal(redisEvent)
	if err != nil {
		suoh.logger.Error().Err(err).Msg("failed to marshal observing event")
		return
	}
	if err := suoh.redis.Publish(suoh.ctx, redisModels.REDIS_CHANNEL_OBSERVE, jsonEvent).Err(); err != nil {
		suoh.logger.Error().Err(err).Msg("failed to publish observing event")
	}
}

func (suoh *SocketUserObservingHandler) updateUserOnlineStatusInCache(userId uint, status bool, lastSeen time.Time) error {
	statusKey := fmt.Sprintf("user_online_status_%v", userId)
	if err := suoh.redis.Set(suoh.ctx, statusKey, strconv.FormatBool(status), onlineStatusCacheTTL).Err(); err != nil {
		return err
	}

	lastSeenKey := fmt.Sprintf("user_last_seen_%v", userId)
	return suoh.redis.Set(suoh.ctx, lastSeenKey, lastSeen.Format("2006-01-02 15:04:05"), onlineStatusCacheTTL).Err()
}

// currentStatus reads the cached status first and falls back to the database
// when the cache has expired or never saw the user.
func (suoh *SocketUserObservingHandler) currentStatus(userId uint) (bool, *time.Time) {
	statusKey := fmt.Sprintf("user_online_status_%v", userId)
	statusStr, err := suoh.redis.Get(suoh.ctx, statusKey).Result()
	if err == nil {
		lastSeenKey := fmt.Sprintf("user_last_seen_%v", userId)
		lastSeenStr, lsErr := suoh.redis.Get(suoh.ctx, lastSeenKey).Result()
		if lsErr == nil {
			if lastSeen, parseErr := utils.StrToTime(lastSeenStr); parseErr == nil {
				return statusStr == "true", lastSeen
			}
		}
	}

	isOnline, lastSeen, err := suoh.userService.GetUserOnlineStatus(userId)
	if err != nil {
		suoh.logger.Warn().Err(err).Uint("user_id", userId).Msg("failed to resolve online status")
		return false, nil
	}
	return isOnline, lastSeen
}

func (suoh *SocketUserObservingHandler) retrieveNotifiersFromQuery(ctx *gin.Context) ([]uint, error) {
	notifiersQuery := ctx.Query("notifiers")
	if notifiersQuery == "" {
		return nil, errs.ErrInvalidRequest
	}
	strNotifiers := strings.Split(notifiersQuery, ",")
	notifiers := make([]uint, 0, len(strNotifiers))
	for _, strNum := range strNotifiers {
		num, err := strconv.Atoi(strNum)
		if err != nil || num < 1 {
			return nil, errs.ErrInvalidRequest
		}
		notifiers = append(notifiers, uint(num))
	}
	return notifiers, nil
}

// handleRedisMessages fans observed status changes out to local watchers.
func (suoh *SocketUserObservingHandler) handleRedisMessages() {
	pubsub := suoh.redis.Subscribe(suoh.ctx, redisModels.REDIS_CHANNEL_OBSERVE)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var redisEvent obsSocketModels.ObservingSocketEvent
		if err := json.Unmarshal([]byte(msg.Payload), &redisEvent); err != nil {
			suoh.logger.Error().Err(err).Msg("failed to unmarshal observing event")
			continue
		}

		event := socketModels.ServerEvent{
			Event:   redisEvent.Event,
			Payload: redisEvent.Payload,
		}
		for _, conn := range suoh.watchers.ConnectionsFor(redisEvent.Payload.UserId) {
			if err := conn.Enqueue(event); err != nil {
				suoh.watchers.Leave(conn)
				_ = conn.Close()
			}
		}
	}
}
