package pad

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(b Backend, cfg *Config) *Engine {
	table := DefaultTable()
	return NewEngine(NewRegistry(b, table, zap.NewNop()), table, cfg, zap.NewNop())
}

func TestTickEndToEnd(t *testing.T) {
	b := newFakeBackend()
	b.attach(1, newFakeDevice("DualSense",
		[]float64{0.02, -0.01, 0.9, 0.0, -0.5, 0.8},
		make([]bool, 14),
		make([]HatVector, 1)))
	e := newTestEngine(b, NewConfig(0.06, false))

	frame := e.Tick()

	require.True(t, frame.Connected)
	assert.Equal(t, "DualSense", frame.Name)
	assert.Equal(t, Capabilities{Axes: 6, Buttons: 14, Hats: 1}, frame.Caps)

	assert.Equal(t, Vector{X: 0.02, Y: -0.01}, frame.Sticks.Left.Position)
	assert.False(t, frame.Sticks.Left.Drifting)

	assert.Equal(t, Vector{X: 0.9, Y: 0.0}, frame.Sticks.Right.Position)
	assert.True(t, frame.Sticks.Right.Drifting)

	assert.InDelta(t, 0.25, frame.Triggers.L2.Value, 1e-9)
	assert.InDelta(t, 0.8, frame.Triggers.R2.Value, 1e-9)

	assert.InDelta(t, 0.06, frame.Deadzone, 1e-9)
	assert.Nil(t, frame.Raw)
}

func TestTickNoDevice(t *testing.T) {
	e := newTestEngine(newFakeBackend(), NewConfig(0.06, false))

	frame := e.Tick()

	assert.False(t, frame.Connected)
	assert.True(t, frame.Caps.IsZero())
	assert.Equal(t, SticksState{}, frame.Sticks)
	assert.Equal(t, TriggersState{}, frame.Triggers)
	assert.Equal(t, ButtonState{}, frame.Buttons)
	assert.Equal(t, HatVector{}, frame.Dpad)
	assert.False(t, frame.Sticks.Left.Drifting)
	assert.False(t, frame.Sticks.Right.Drifting)
}

func TestDeadzoneCommandsApplyAtTickStart(t *testing.T) {
	b := newFakeBackend()
	b.attach(1, newFakeDevice("Pad",
		[]float64{0.065, 0, 0, 0, 0, 0},
		make([]bool, 14), make([]HatVector, 1)))
	e := newTestEngine(b, NewConfig(0.06, false))

	frame := e.Tick()
	require.True(t, frame.Sticks.Left.Drifting)

	e.Submit(CmdDeadzoneUp) // 0.06 -> 0.07, 0.065 no longer exceeds it
	frame = e.Tick()
	assert.InDelta(t, 0.07, frame.Deadzone, 1e-9)
	assert.False(t, frame.Sticks.Left.Drifting)

	e.Submit(CmdDeadzoneDown)
	e.Submit(CmdDeadzoneDown)
	frame = e.Tick()
	assert.InDelta(t, 0.05, frame.Deadzone, 1e-9)
	assert.True(t, frame.Sticks.Left.Drifting) // 0.065 exceeds 0.05 again
}

func TestDebugCommandTogglesRawDump(t *testing.T) {
	b := newFakeBackend()
	b.attach(1, newFakeDevice("Pad",
		[]float64{0.1, 0.2}, []bool{true}, []HatVector{{X: 0, Y: -1}}))
	e := newTestEngine(b, NewConfig(0.06, false))

	frame := e.Tick()
	require.Nil(t, frame.Raw)

	e.Submit(CmdToggleDebug)
	frame = e.Tick()
	require.True(t, frame.Debug)
	require.NotNil(t, frame.Raw)
	assert.Equal(t, []float64{0.1, 0.2}, frame.Raw.Axes)
	assert.Equal(t, []bool{true}, frame.Raw.Buttons)
	assert.Equal(t, []HatVector{{X: 0, Y: -1}}, frame.Raw.Hats)
}

func TestNoRawDumpWhileDisconnected(t *testing.T) {
	e := newTestEngine(newFakeBackend(), NewConfig(0.06, true))
	frame := e.Tick()
	assert.True(t, frame.Debug)
	assert.Nil(t, frame.Raw)
}

type recordingHaptics struct {
	left, right float64
	dur         time.Duration
	calls       int
}

func (r *recordingHaptics) Pulse(left, right float64, d time.Duration) {
	r.left, r.right, r.dur = left, right, d
	r.calls++
}

func TestRumbleTestCommand(t *testing.T) {
	e := newTestEngine(newFakeBackend(), NewConfig(0.06, false))
	rec := &recordingHaptics{}
	e.SetHaptics(rec)

	e.Submit(CmdRumbleTest)
	e.Tick()

	require.Equal(t, 1, rec.calls)
	assert.Equal(t, 0.8, rec.left)
	assert.Equal(t, 0.8, rec.right)
	assert.Equal(t, 300*time.Millisecond, rec.dur)
}

func TestRumbleTestWithoutDriverIsNoOp(t *testing.T) {
	e := newTestEngine(newFakeBackend(), NewConfig(0.06, false))
	e.Submit(CmdRumbleTest)
	assert.NotPanics(t, func() { e.Tick() })
}

func TestRunEmitsFramesAndStops(t *testing.T) {
	b := newFakeBackend()
	b.attach(1, newFakeDevice("Pad",
		make([]float64, 6), make([]bool, 14), make([]HatVector, 1)))
	e := newTestEngine(b, NewConfig(0.06, false))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	select {
	case frame := <-e.Changes():
		assert.True(t, frame.Connected)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame emitted")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
	}
	assert.True(t, b.quitDone)
}

func TestRunFailsFastOnBackendInit(t *testing.T) {
	b := newFakeBackend()
	b.initErr = assert.AnError
	e := newTestEngine(b, NewConfig(0.06, false))

	err := e.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
