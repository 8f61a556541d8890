package feed

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"ghprofile/internal/pkg/logx"
	"ghprofile/internal/pkg/randx"
)

const (
	// timeout for writing one frame to the connection.
	writeWait = 10 * time.Second

	// maximum time to wait for a Pong from the client.
	pongWait = 60 * time.Second

	// interval between Pings; must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maximum size of an inbound frame. Views only send control frames.
	maxMessageSize = 512

	// number of outbound frames queued per client before it is dropped.
	sendBuffer = 16
)

// Client is one WebSocket subscriber of the hub.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	// send queues encoded frames; closed by the hub when the client is dropped.
	send chan []byte

	logger zerolog.Logger
}

// NewClient wraps conn as a subscriber of hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id := randx.SubscriberID()
	return &Client{
		id:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		logger: logx.Component("FeedClient").With().Str("client_id", id).Logger(),
	}
}

// ID returns the client's identifier.
func (c *Client) ID() string {
	return c.id
}

// enqueue queues msg without blocking. It reports false when the queue is full.
func (c *Client) enqueue(msg []byte) bool {
	if msg == nil {
		return true
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// ReadPump consumes inbound frames to process Pongs and detect disconnects.
// When it returns the client is unregistered and the connection closed.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in ReadPump")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Client connection closed unexpectedly")
			}
			return
		}
	}
}

// WritePump writes queued frames and periodic Pings until the send queue is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.write(message, ok) {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}

// write sends one queued frame, or a Close frame when the queue was closed.
// It reports whether the pump should continue.
func (c *Client) write(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Debug().Err(err).Msg("Error writing message")
		return false
	}

	return true
}
