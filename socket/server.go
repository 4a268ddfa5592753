package socket

import (
	"log"

	"tradelink_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// NewServer builds the Socket.IO server that feeds the presence registry.
// Clients connect, then emit "register" with their user id; everything the
// server pushes afterwards goes through the notification service.
func NewServer(presence *services.PresenceRegistry) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Printf("🔌 Socket connected: %s", s.ID())
		return nil
	})

	server.OnEvent("/", "register", func(s socketio.Conn, userID string) {
		if userID == "" {
			log.Printf("⚠️ Register with empty userId from socket %s", s.ID())
			return
		}
		presence.Register(userID, s)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		presence.Unregister(s)
		log.Printf("🔌 Socket disconnected: %s (%s)", s.ID(), reason)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Printf("⚠️ Socket error: %v", err)
	})

	return server
}
