package hub

import (
	"time"

	"github.com/padscope/padscope/internal/pad"
)

// WSMessage is a server-to-client message carrying either a full frame
// snapshot or the delta against the previous frame.
type WSMessage struct {
	Type      string             `json:"type"` // "full" or "delta"
	Seq       int64              `json:"seq"`
	Timestamp int64              `json:"timestamp"` // Unix milliseconds
	Data      *pad.FrameSnapshot `json:"data,omitempty"`
	Changes   *pad.DeltaChanges  `json:"changes,omitempty"`
}

func NewFullMessage(seq int64, frame *pad.FrameSnapshot) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      frame,
	}
}

func NewDeltaMessage(seq int64, changes *pad.DeltaChanges) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// ClientMessage is a client-to-server configuration command.
type ClientMessage struct {
	Type string `json:"type"`
}

// Client command types. Each maps to one engine command; anything else is
// ignored with a log line.
const (
	MsgDeadzoneUp   = "deadzone_up"
	MsgDeadzoneDown = "deadzone_down"
	MsgToggleDebug  = "toggle_debug"
	MsgRumbleTest   = "rumble_test"
)
