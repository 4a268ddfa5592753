package services

import (
	"log"
	"sync"
)

// Connection is the slice of a socket connection presence needs. Satisfied by
// socketio.Conn.
type Connection interface {
	ID() string
	Emit(event string, args ...interface{})
}

// PresenceRegistry maps online users to their live socket connection. Entries
// are process-local and never persisted: durable state, not presence, is the
// source of truth for anything missed while offline.
type PresenceRegistry struct {
	mu     sync.RWMutex
	online map[string]Connection
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{online: make(map[string]Connection)}
}

// Register binds a user to a connection. A later registration for the same
// user wins, implicitly invalidating the previous mapping.
func (p *PresenceRegistry) Register(userID string, conn Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[userID] = conn
	log.Printf("🟢 User %s online (socket %s)", userID, conn.ID())
}

// Unregister removes whichever entry points at this connection. Fired from
// the socket disconnect callback; a no-op when the user already re-registered
// on a fresh connection or was never registered.
func (p *PresenceRegistry) Unregister(conn Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for userID, current := range p.online {
		if current.ID() == conn.ID() {
			delete(p.online, userID)
			log.Printf("🔴 User %s offline (socket %s)", userID, conn.ID())
			return
		}
	}
}

// Lookup returns the user's live connection, if any.
func (p *PresenceRegistry) Lookup(userID string) (Connection, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	conn, ok := p.online[userID]
	return conn, ok
}

// OnlineCount reports how many users currently hold a live connection.
func (p *PresenceRegistry) OnlineCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.online)
}
