// Package realtime tracks live websocket connections and pushes events
// to online users. Each user holds at most one connection; a newer
// connection replaces the previous one.
package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Registry maps user IDs to their active websocket client.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]*Client
	logger  zerolog.Logger
}

// NewRegistry creates an empty Registry
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		clients: make(map[uint]*Client),
		logger:  logger.With().Str("component", "realtime").Logger(),
	}
}

// Register creates a client for the connection and stores it as the
// user's active connection. An existing connection for the same user
// is closed and replaced.
func (r *Registry) Register(userID uint, conn *websocket.Conn) *Client {
	client := newClient(userID, conn, r.logger)

	r.mu.Lock()
	previous := r.clients[userID]
	r.clients[userID] = client
	if previous != nil {
		// Closed under the write lock so Push, which sends while
		// holding the read lock, can never hit a closed channel.
		close(previous.send)
	}
	r.mu.Unlock()

	if previous != nil {
		r.logger.Debug().Uint("user_id", userID).Msg("replaced existing connection")
	}
	return client
}

// Unregister removes the client if it is still the user's active
// connection. A client that was already replaced is left alone so the
// replacement keeps its slot.
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	current, ok := r.clients[client.UserID]
	if ok && current.handle == client.handle {
		delete(r.clients, client.UserID)
		close(client.send)
	}
	r.mu.Unlock()
}

// IsOnline reports whether the user has an active connection
func (r *Registry) IsOnline(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[userID]
	return ok
}

// Online returns the count of active connections
func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Push delivers an event to the user if they are online. A full send
// buffer drops the event rather than blocking the caller.
func (r *Registry) Push(userID uint, event string, payload interface{}) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[userID]
	if !ok {
		return false
	}

	select {
	case client.send <- Event{Type: event, Data: payload}:
		return true
	default:
		r.logger.Warn().Uint("user_id", userID).Str("event", event).Msg("send buffer full, event dropped")
		return false
	}
}
