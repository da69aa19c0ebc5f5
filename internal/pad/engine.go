package pad

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// tickInterval paces the loop at ~60Hz. Frame pacing is best-effort, not
// a hard real-time guarantee.
const tickInterval = 16 * time.Millisecond

// Command is a discrete configuration request from an external
// collaborator. Commands mutate only the engine config and are applied
// synchronously at the start of a tick, never concurrently with sampling.
type Command int

const (
	CmdDeadzoneUp Command = iota
	CmdDeadzoneDown
	CmdToggleDebug
	CmdRumbleTest
)

// HapticDriver issues motor commands. Implementations must not block the
// caller; pulse sequencing runs on its own timer.
type HapticDriver interface {
	Pulse(left, right float64, d time.Duration)
}

// Haptic test pulse parameters, issued on CmdRumbleTest.
const (
	testPulseStrength = 0.8
	testPulseDuration = 300 * time.Millisecond
)

// Engine drives the per-tick pipeline: apply commands, rescan hot-plug,
// sample, normalize, classify drift, and emit an immutable FrameSnapshot.
// Single-threaded and synchronous; the only blocking step is the short
// hardware read inside Sample.
type Engine struct {
	registry *Registry
	table    *Table
	cfg      *Config
	haptics  HapticDriver
	log      *zap.Logger

	commands chan Command
	changes  chan FrameSnapshot
}

func NewEngine(registry *Registry, table *Table, cfg *Config, log *zap.Logger) *Engine {
	return &Engine{
		registry: registry,
		table:    table,
		cfg:      cfg,
		log:      log,
		commands: make(chan Command, 16),
		changes:  make(chan FrameSnapshot, 64),
	}
}

// SetHaptics attaches an optional haptic driver. A nil driver leaves
// CmdRumbleTest as a logged no-op; haptics failure never disables
// telemetry.
func (e *Engine) SetHaptics(h HapticDriver) {
	e.haptics = h
}

// Changes returns the channel on which one frame per tick is emitted.
func (e *Engine) Changes() <-chan FrameSnapshot {
	return e.changes
}

// Submit enqueues a command for the next tick. Non-blocking; commands are
// dropped when the queue is full.
func (e *Engine) Submit(cmd Command) {
	select {
	case e.commands <- cmd:
	default:
		e.log.Warn("command queue full, dropping command", zap.Int("command", int(cmd)))
	}
}

// Run starts the backend and executes the tick loop on the current
// thread until the context is cancelled. A backend init failure is the
// single fatal startup condition.
func (e *Engine) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := e.registry.Start(); err != nil {
		return err
	}
	defer e.registry.Stop()

	e.log.Info("telemetry engine started",
		zap.Float64("deadzone", e.cfg.Deadzone()),
		zap.Bool("debug", e.cfg.Debug()))

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.emit(e.Tick())
		}
	}
}

// Tick runs one full pipeline pass and returns the resulting frame.
// Exposed separately from Run so the pipeline can be exercised without
// the pacing loop.
func (e *Engine) Tick() FrameSnapshot {
	e.applyCommands()
	caps := e.registry.Rescan()
	return e.buildFrame(caps)
}

func (e *Engine) applyCommands() {
	for {
		select {
		case cmd := <-e.commands:
			switch cmd {
			case CmdDeadzoneUp:
				e.log.Info("deadzone increased", zap.Float64("deadzone", e.cfg.IncreaseDeadzone()))
			case CmdDeadzoneDown:
				e.log.Info("deadzone decreased", zap.Float64("deadzone", e.cfg.DecreaseDeadzone()))
			case CmdToggleDebug:
				e.log.Info("debug toggled", zap.Bool("debug", e.cfg.ToggleDebug()))
			case CmdRumbleTest:
				if e.haptics == nil {
					e.log.Info("rumble test requested but no haptic driver is attached")
					continue
				}
				e.haptics.Pulse(testPulseStrength, testPulseStrength, testPulseDuration)
			}
		default:
			return
		}
	}
}

func (e *Engine) buildFrame(caps Capabilities) FrameSnapshot {
	conn := e.registry.Connection()
	snap := Sample(conn)
	sem := Normalize(snap, e.table)

	deadzone := e.cfg.Deadzone()
	sem.Sticks.Left.Drifting = Classify(sem.Sticks.Left.Position.X, sem.Sticks.Left.Position.Y, deadzone)
	sem.Sticks.Right.Drifting = Classify(sem.Sticks.Right.Position.X, sem.Sticks.Right.Position.Y, deadzone)

	frame := FrameSnapshot{
		Caps:     caps,
		Sticks:   sem.Sticks,
		Triggers: sem.Triggers,
		Buttons:  sem.Buttons,
		Dpad:     sem.Dpad,
		Deadzone: deadzone,
		Debug:    e.cfg.Debug(),
	}
	if c, ok := conn.(Connected); ok {
		frame.Connected = true
		frame.Name = c.Name
		if frame.Debug {
			frame.Raw = &snap
		}
	}
	return frame
}

func (e *Engine) emit(frame FrameSnapshot) {
	select {
	case e.changes <- frame:
	default:
		// Drop when the consumer lags; the next tick supersedes this one.
	}
}
