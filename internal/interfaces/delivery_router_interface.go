package interfaces

import (
	"context"

	socketModels "socialChat/internal/models/socket"
)

// DeliveryRouter pushes an event to every live connection of an identity.
// Best effort: a miss is not an error and is never surfaced to the caller.
type DeliveryRouter interface {
	Deliver(ctx context.Context, userId uint, event socketModels.ServerEvent)
}
