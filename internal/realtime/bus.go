package realtime

import (
	"context"
	"encoding/json"

	redisModels "socialChat/internal/models/redis"
	socketModels "socialChat/internal/models/socket"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Bus bridges deliveries between instances over a Redis pub/sub channel.
// Every envelope carries the publishing instance's origin id; the subscriber
// skips its own envelopes because the router already delivered them locally.
type Bus struct {
	client  *redis.Client
	channel string
	origin  string
	logger  *zerolog.Logger
}

func NewBus(client *redis.Client, logger *zerolog.Logger) *Bus {
	return &Bus{
		client:  client,
		channel: redisModels.REDIS_CHANNEL_CHAT,
		origin:  uuid.NewString(),
		logger:  logger,
	}
}

func (b *Bus) Publish(ctx context.Context, receiverId uint, event socketModels.ServerEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(redisModels.RedisPublishedMessage{
		Origin:     b.origin,
		ReceiverID: receiverId,
		Event:      event.Event,
		Payload:    payload,
	})
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, envelope).Err()
}

// Run subscribes to the chat channel and feeds foreign envelopes to deliver
// until ctx is cancelled. Meant to run in its own goroutine.
func (b *Bus) Run(ctx context.Context, deliver func(userId uint, event socketModels.ServerEvent)) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var envelope redisModels.RedisPublishedMessage
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				b.logger.Error().Err(err).Msg("failed to unmarshal bus envelope")
				continue
			}
			if envelope.Origin == b.origin {
				continue
			}
			deliver(envelope.ReceiverID, socketModels.ServerEvent{
				Event:   envelope.Event,
				Payload: envelope.Payload,
			})
		}
	}
}
