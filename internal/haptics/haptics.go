// Package haptics schedules motor pulses without blocking the tick loop:
// the engine issues a fire-and-forget command and the stop runs on a
// timer. Haptics are optional; a missing device or failed command is
// logged and never fatal.
package haptics

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/padscope/padscope/internal/pad"
)

// Source yields the current device connection. *pad.Registry satisfies
// it.
type Source interface {
	Connection() pad.Connection
}

// Pulser implements pad.HapticDriver.
type Pulser struct {
	src Source
	log *zap.Logger

	mu        sync.Mutex
	stopTimer *time.Timer
}

func NewPulser(src Source, log *zap.Logger) *Pulser {
	return &Pulser{src: src, log: log}
}

// Pulse drives both motors at the given intensities for the duration,
// then stops them. Returns immediately; the stop is scheduled on a timer.
func (p *Pulser) Pulse(left, right float64, d time.Duration) {
	c, ok := p.src.Connection().(pad.Connected)
	if !ok {
		p.log.Info("haptic pulse requested with no controller connected")
		return
	}
	if err := c.Device.Rumble(left, right, d); err != nil {
		p.log.Warn("haptic pulse failed", zap.Error(err))
		return
	}
	p.log.Debug("haptic pulse issued",
		zap.Float64("left", left),
		zap.Float64("right", right),
		zap.Duration("duration", d))

	// A pulse replaces any pulse still running; cancel the old stop
	// timer so it cannot cut the new pulse short.
	p.mu.Lock()
	if p.stopTimer != nil {
		p.stopTimer.Stop()
	}
	p.stopTimer = time.AfterFunc(d, p.Stop)
	p.mu.Unlock()
}

// Stop cancels any running pulse on the currently connected device.
func (p *Pulser) Stop() {
	c, ok := p.src.Connection().(pad.Connected)
	if !ok {
		return
	}
	if err := c.Device.Rumble(0, 0, 0); err != nil {
		p.log.Debug("haptic stop failed", zap.Error(err))
	}
}
