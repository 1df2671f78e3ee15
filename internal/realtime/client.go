package realtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// Event is the payload pushed to a connected browser. Type is one of
// the Event* constants in the services package.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Client wraps one websocket connection. The handle distinguishes it
// from a newer connection by the same user, so a stale disconnect
// cannot evict its replacement.
type Client struct {
	UserID uint

	handle string
	conn   *websocket.Conn
	send   chan Event
	logger zerolog.Logger
}

func newClient(userID uint, conn *websocket.Conn, logger zerolog.Logger) *Client {
	return &Client{
		UserID: userID,
		handle: uuid.NewString(),
		conn:   conn,
		send:   make(chan Event, sendBufferSize),
		logger: logger.With().Uint("user_id", userID).Logger(),
	}
}

// ReadPump consumes the connection until it drops, then unregisters
// the client. Inbound frames are only used for liveness.
func (c *Client) ReadPump(registry *Registry) {
	defer func() {
		registry.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}
	}
}

// WritePump drains the send channel onto the wire and keeps the
// connection alive with pings. It exits when the channel is closed.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
