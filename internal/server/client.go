package server

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Client is one WebSocket connection attached to the hub.
type Client struct {
	srv    *Server
	conn   *websocket.Conn
	send   chan Frame
	logger *zap.Logger
}

func newClient(srv *Server, conn *websocket.Conn) *Client {
	return &Client{
		srv:    srv,
		conn:   conn,
		send:   make(chan Frame, sendBuffer),
		logger: srv.logger.With(zap.String("remote", conn.RemoteAddr().String())),
	}
}

// readPump decodes command envelopes until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.srv.hub.unregister(c)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug("closing connection", zap.Error(err))
		}
		c.logger.Info("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", zap.Error(err))
			}
			return
		}

		frame := c.srv.dispatch(env)
		select {
		case c.send <- frame:
		default:
			c.logger.Warn("send buffer full, dropping result frame")
		}
	}
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
