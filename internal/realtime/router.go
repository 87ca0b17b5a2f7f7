package realtime

import (
	"context"

	socketModels "socialChat/internal/models/socket"

	"github.com/rs/zerolog"
)

// Router pushes events to every live connection of an identity. Delivery is
// best effort: persistence, not delivery, is the correctness boundary, so a
// miss (no live connection) is not an error and is never retried here. A
// connection that fails mid-delivery is dropped as if it had left, without
// affecting delivery to the others.
type Router struct {
	registry *Registry
	bus      *Bus
	logger   *zerolog.Logger
}

func NewRouter(registry *Registry, logger *zerolog.Logger) *Router {
	return &Router{
		registry: registry,
		logger:   logger,
	}
}

// AttachBus wires the cross-instance pub/sub bridge. Without a bus the router
// only reaches connections held by this process.
func (r *Router) AttachBus(bus *Bus) {
	r.bus = bus
}

// Deliver fans the event out to userId's local connections, then republishes
// it on the bus for connections held by other instances. Events enqueued on a
// single connection by sequential Deliver calls keep their order.
func (r *Router) Deliver(ctx context.Context, userId uint, event socketModels.ServerEvent) {
	r.DeliverLocal(userId, event)
	if r.bus != nil {
		if err := r.bus.Publish(ctx, userId, event); err != nil {
			r.logger.Error().Err(err).Uint("user_id", userId).Msg("failed to publish event to bus")
		}
	}
}

// DeliverLocal pushes the event to local connections only. The bus subscriber
// uses it to fan out foreign envelopes without republishing them.
func (r *Router) DeliverLocal(userId uint, event socketModels.ServerEvent) {
	conns := r.registry.ConnectionsFor(userId)
	if len(conns) == 0 {
		r.logger.Debug().Uint("user_id", userId).Str("event", event.Event).Msg("no live connections, delivery skipped")
		return
	}
	for _, conn := range conns {
		if err := conn.Enqueue(event); err != nil {
			r.logger.Warn().Err(err).Uint("user_id", userId).Str("connection_id", conn.ID()).Msg("dropping dead connection")
			r.registry.Leave(conn)
			_ = conn.Close()
		}
	}
}
