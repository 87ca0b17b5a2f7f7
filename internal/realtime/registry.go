package realtime

import (
	"sync"
)

// Registry maps a user identity to its set of live connections. A user may be
// connected from several devices or from none. Content is in-memory only and
// rebuilt from scratch after a restart, clients re-join on reconnect.
type Registry struct {
	mu          sync.RWMutex
	connections map[uint]map[string]Connection
	identities  map[string]uint
}

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[uint]map[string]Connection),
		identities:  make(map[string]uint),
	}
}

// Join registers conn under userId. Joining the same connection twice has no
// additional effect.
func (r *Registry) Join(userId uint, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.connections[userId]; !ok {
		r.connections[userId] = make(map[string]Connection)
	}
	r.connections[userId][conn.ID()] = conn
	r.identities[conn.ID()] = userId
}

// Leave removes conn from whichever identity it was registered under. No-op
// for unknown connections.
func (r *Registry) Leave(conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userId, ok := r.identities[conn.ID()]
	if !ok {
		return
	}
	delete(r.identities, conn.ID())
	if set, ok := r.connections[userId]; ok {
		delete(set, conn.ID())
		if len(set) == 0 {
			delete(r.connections, userId)
		}
	}
}

// ConnectionsFor returns the current live set for userId, possibly empty.
func (r *Registry) ConnectionsFor(userId uint) []Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.connections[userId]
	if !ok {
		return nil
	}
	conns := make([]Connection, 0, len(set))
	for _, conn := range set {
		conns = append(conns, conn)
	}
	return conns
}

// CloseAll closes every registered connection and empties the registry. Used
// on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userId, set := range r.connections {
		for id, conn := range set {
			_ = conn.Close()
			delete(set, id)
			delete(r.identities, id)
		}
		delete(r.connections, userId)
	}
}
