package realtime

import (
	"fmt"
	"sync"
	"testing"

	socketModels "socialChat/internal/models/socket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnection struct {
	id      string
	userId  uint
	mu      sync.Mutex
	events  []socketModels.ServerEvent
	failure error
	closed  bool
}

func newFakeConnection(id string, userId uint) *fakeConnection {
	return &fakeConnection{id: id, userId: userId}
}

func (fc *fakeConnection) ID() string {
	return fc.id
}

func (fc *fakeConnection) UserID() uint {
	return fc.userId
}

func (fc *fakeConnection) Enqueue(event socketModels.ServerEvent) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.failure != nil {
		return fc.failure
	}
	fc.events = append(fc.events, event)
	return nil
}

func (fc *fakeConnection) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.closed = true
	return nil
}

func (fc *fakeConnection) received() []socketModels.ServerEvent {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make([]socketModels.ServerEvent, len(fc.events))
	copy(out, fc.events)
	return out
}

func TestRegistryJoinIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	conn := newFakeConnection("c1", 1)

	registry.Join(1, conn)
	registry.Join(1, conn)

	require.Len(t, registry.ConnectionsFor(1), 1)
}

func TestRegistryTracksMultipleDevices(t *testing.T) {
	registry := NewRegistry()
	registry.Join(1, newFakeConnection("c1", 1))
	registry.Join(1, newFakeConnection("c2", 1))
	registry.Join(2, newFakeConnection("c3", 2))

	assert.Len(t, registry.ConnectionsFor(1), 2)
	assert.Len(t, registry.ConnectionsFor(2), 1)
}

func TestRegistryLeaveRemovesConnection(t *testing.T) {
	registry := NewRegistry()
	conn1 := newFakeConnection("c1", 1)
	conn2 := newFakeConnection("c2", 1)
	registry.Join(1, conn1)
	registry.Join(1, conn2)

	registry.Leave(conn1)

	conns := registry.ConnectionsFor(1)
	require.Len(t, conns, 1)
	assert.Equal(t, "c2", conns[0].ID())
}

func TestRegistryLeaveUnknownConnectionIsNoop(t *testing.T) {
	registry := NewRegistry()
	registry.Join(1, newFakeConnection("c1", 1))

	registry.Leave(newFakeConnection("never-joined", 7))

	assert.Len(t, registry.ConnectionsFor(1), 1)
}

func TestRegistryConnectionsForUnknownIdentity(t *testing.T) {
	registry := NewRegistry()
	assert.Empty(t, registry.ConnectionsFor(42))
}

func TestRegistryConcurrentJoinLeave(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn := newFakeConnection(fmt.Sprintf("c%d", i), uint(i%5+1))
			registry.Join(conn.UserID(), conn)
			registry.ConnectionsFor(conn.UserID())
			if i%2 == 0 {
				registry.Leave(conn)
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for userId := uint(1); userId <= 5; userId++ {
		total += len(registry.ConnectionsFor(userId))
	}
	assert.Equal(t, 25, total)
}

func TestRegistryCloseAll(t *testing.T) {
	registry := NewRegistry()
	conn1 := newFakeConnection("c1", 1)
	conn2 := newFakeConnection("c2", 2)
	registry.Join(1, conn1)
	registry.Join(2, conn2)

	registry.CloseAll()

	assert.Empty(t, registry.ConnectionsFor(1))
	assert.Empty(t, registry.ConnectionsFor(2))
	assert.True(t, conn1.closed)
	assert.True(t, conn2.closed)
}
