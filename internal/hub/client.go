package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/padscope/padscope/internal/pad"
)

// CommandSink accepts configuration commands decoded from client
// messages. *pad.Engine satisfies it.
type CommandSink interface {
	Submit(pad.Command)
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	log  *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, log *zap.Logger) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		log:  log,
	}
}

// WritePump sends messages from the send channel to the WebSocket
// connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads client messages and forwards recognized configuration
// commands to the sink. Commands only mutate engine config; they never
// touch the sampling path directly.
func (c *Client) ReadPump(sink CommandSink) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.log.Warn("malformed client message", zap.Error(err))
			continue
		}

		switch msg.Type {
		case MsgDeadzoneUp:
			sink.Submit(pad.CmdDeadzoneUp)
		case MsgDeadzoneDown:
			sink.Submit(pad.CmdDeadzoneDown)
		case MsgToggleDebug:
			sink.Submit(pad.CmdToggleDebug)
		case MsgRumbleTest:
			sink.Submit(pad.CmdRumbleTest)
		default:
			c.log.Debug("ignoring unknown client message", zap.String("type", msg.Type))
		}
	}
}
