package hub

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/padscope/padscope/internal/pad"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster consumes the engine's frame stream and forwards it to the
// hub as deltas, with periodic full syncs so late or lossy clients
// reconverge. While debug is enabled every frame goes out full, because
// the raw dump is not part of the delta encoding.
type Broadcaster struct {
	hub          *Hub
	changes      <-chan pad.FrameSnapshot
	lastFrame    pad.FrameSnapshot
	hasFrame     bool
	seq          int64
	syncInterval time.Duration
	log          *zap.Logger
}

func NewBroadcaster(h *Hub, changes <-chan pad.FrameSnapshot, log *zap.Logger) *Broadcaster {
	return &Broadcaster{
		hub:          h,
		changes:      changes,
		syncInterval: fullSyncInterval,
		log:          log,
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(b.syncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case frame, ok := <-b.changes:
			if !ok {
				return
			}

			delta := pad.ComputeDelta(b.lastFrame, frame)
			b.lastFrame = frame
			b.hasFrame = true

			if delta.IsEmpty() {
				continue
			}

			b.seq++
			deltaCount++

			if frame.Debug || deltaCount >= deltaCountSync {
				b.sendFull(frame)
				deltaCount = 0
			} else {
				b.sendDelta(delta)
			}

		case <-ticker.C:
			// Nothing has been received from the engine yet; a full
			// sync here would broadcast a zero-value frame.
			if !b.hasFrame {
				continue
			}
			b.seq++
			b.sendFull(b.lastFrame)
		}
	}
}

// SendInitialState sends the current full frame to a newly connected
// client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.seq++
	msg := NewFullMessage(b.seq, &b.lastFrame)
	data, err := json.Marshal(msg)
	if err != nil {
		b.log.Error("marshal initial state", zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) sendFull(frame pad.FrameSnapshot) {
	msg := NewFullMessage(b.seq, &frame)
	data, err := json.Marshal(msg)
	if err != nil {
		b.log.Error("marshal full message", zap.Error(err))
		return
	}
	b.hub.Broadcast(data)
}

func (b *Broadcaster) sendDelta(delta *pad.DeltaChanges) {
	msg := NewDeltaMessage(b.seq, delta)
	data, err := json.Marshal(msg)
	if err != nil {
		b.log.Error("marshal delta message", zap.Error(err))
		return
	}
	b.hub.Broadcast(data)
}
