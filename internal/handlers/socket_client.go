package handlers

import (
	"sync"

	"socialChat/internal/errs"
	socketModels "socialChat/internal/models/socket"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const outboundQueueSize = 64

// socketClient wraps one websocket connection behind the realtime.Connection
// contract. Enqueue never touches the wire; the write pump is the only
// goroutine writing to the socket.
type socketClient struct {
	id     string
	userId uint
	conn   *websocket.Conn
	send   chan socketModels.ServerEvent
	done   chan struct{}
	once   sync.Once
}

func newSocketClient(userId uint, conn *websocket.Conn) *socketClient {
	return &socketClient{
		id:     uuid.NewString(),
		userId: userId,
		conn:   conn,
		send:   make(chan socketModels.ServerEvent, outboundQueueSize),
		done:   make(chan struct{}),
	}
}

func (sc *socketClient) ID() string {
	return sc.id
}

func (sc *socketClient) UserID() uint {
	return sc.userId
}

// Enqueue hands the event to the write pump. A closed connection or a full
// queue reports an error so the router can evict the client; delivery to
// other connections is unaffected.
func (sc *socketClient) Enqueue(event socketModels.ServerEvent) error {
	select {
	case <-sc.done:
		return errs.ErrConnectionClosed
	default:
	}
	select {
	case sc.send <- event:
		return nil
	default:
		return errs.ErrOutboundQueueFull
	}
}

func (sc *socketClient) Close() error {
	sc.once.Do(func() {
		close(sc.done)
		_ = sc.conn.Close()
	})
	return nil
}

// writePump drains the outbound queue onto the wire in FIFO order. Runs in
// its own goroutine; returns when the client closes or a write fails.
func (sc *socketClient) writePump(logger *zerolog.Logger) {
	for {
		select {
		case <-sc.done:
			return
		case event := <-sc.send:
			if err := sc.conn.WriteJSON(event); err != nil {
				logger.Warn().Err(err).Uint("user_id", sc.userId).Msg("socket write failed")
				_ = sc.Close()
				return
			}
		}
	}
}
