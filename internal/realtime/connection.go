package realtime

import (
	socketModels "socialChat/internal/models/socket"
)

// Connection is one live client session registered under an identity.
// Enqueue hands the event to the connection's outbound queue and must not
// block; the connection's own write pump owns the wire.
type Connection interface {
	ID() string
	UserID() uint
	Enqueue(event socketModels.ServerEvent) error
	Close() error
}
