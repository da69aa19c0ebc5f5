package pad

import "math"

// Capabilities holds the axis/button/hat counts reported by the open device.
// All-zero means no device is connected.
type Capabilities struct {
	Axes    int `json:"axes"`
	Buttons int `json:"buttons"`
	Hats    int `json:"hats"`
}

func (c Capabilities) IsZero() bool {
	return c.Axes == 0 && c.Buttons == 0 && c.Hats == 0
}

// HatVector is a discrete d-pad reading; each component is -1, 0 or 1.
type HatVector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RawSnapshot is one tick's unmapped device readings: axes in roughly
// [-1, 1], buttons as booleans, hats as direction vectors. It is produced
// fresh every tick and discarded after normalization.
type RawSnapshot struct {
	Axes    []float64   `json:"axes"`
	Buttons []bool      `json:"buttons"`
	Hats    []HatVector `json:"hats"`
}

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StickState is one analog stick's raw position plus the drift
// classification for the deadzone in effect this frame.
type StickState struct {
	Position Vector `json:"position"`
	Pressed  bool   `json:"pressed"`
	Drifting bool   `json:"drifting"`
}

// TriggerState is a normalized trigger pull in [0, 1].
type TriggerState struct {
	Value float64 `json:"value"`
}

type ButtonState struct {
	Cross    bool `json:"cross"`
	Circle   bool `json:"circle"`
	Square   bool `json:"square"`
	Triangle bool `json:"triangle"`
	L1       bool `json:"l1"`
	R1       bool `json:"r1"`
	Share    bool `json:"share"`
	Options  bool `json:"options"`
	PS       bool `json:"ps"`
	Touchpad bool `json:"touchpad"`
}

type SticksState struct {
	Left  StickState `json:"left"`
	Right StickState `json:"right"`
}

type TriggersState struct {
	L2 TriggerState `json:"l2"`
	R2 TriggerState `json:"r2"`
}

// FrameSnapshot is the immutable per-tick aggregate handed to the
// presentation collaborator. Raw is only populated while debug is enabled.
type FrameSnapshot struct {
	Connected bool          `json:"connected"`
	Name      string        `json:"name"`
	Caps      Capabilities  `json:"caps"`
	Sticks    SticksState   `json:"sticks"`
	Triggers  TriggersState `json:"triggers"`
	Buttons   ButtonState   `json:"buttons"`
	Dpad      HatVector     `json:"dpad"`
	Deadzone  float64       `json:"deadzone"`
	Debug     bool          `json:"debug"`
	Raw       *RawSnapshot  `json:"raw,omitempty"`
}

// DeltaChanges carries only the frame fields that changed since the
// previous frame; nil fields were unchanged.
type DeltaChanges struct {
	Connected *bool          `json:"connected,omitempty"`
	Name      *string        `json:"name,omitempty"`
	Caps      *Capabilities  `json:"caps,omitempty"`
	Sticks    *SticksState   `json:"sticks,omitempty"`
	Triggers  *TriggersState `json:"triggers,omitempty"`
	Buttons   *ButtonState   `json:"buttons,omitempty"`
	Dpad      *HatVector     `json:"dpad,omitempty"`
	Deadzone  *float64       `json:"deadzone,omitempty"`
	Debug     *bool          `json:"debug,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Connected == nil &&
		d.Name == nil &&
		d.Caps == nil &&
		d.Sticks == nil &&
		d.Triggers == nil &&
		d.Buttons == nil &&
		d.Dpad == nil &&
		d.Deadzone == nil &&
		d.Debug == nil
}

// analogEpsilon is small enough that resting-drift movement is still
// reported, while suppressing pure ADC jitter below display resolution.
const analogEpsilon = 0.001

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogEpsilon
}

func ComputeDelta(old, next FrameSnapshot) *DeltaChanges {
	d := &DeltaChanges{}

	if old.Connected != next.Connected {
		d.Connected = &next.Connected
	}
	if old.Name != next.Name {
		d.Name = &next.Name
	}
	if old.Caps != next.Caps {
		d.Caps = &next.Caps
	}
	if old.Buttons != next.Buttons {
		d.Buttons = &next.Buttons
	}
	if old.Dpad != next.Dpad {
		d.Dpad = &next.Dpad
	}

	if !floatEqual(old.Sticks.Left.Position.X, next.Sticks.Left.Position.X) ||
		!floatEqual(old.Sticks.Left.Position.Y, next.Sticks.Left.Position.Y) ||
		old.Sticks.Left.Pressed != next.Sticks.Left.Pressed ||
		old.Sticks.Left.Drifting != next.Sticks.Left.Drifting ||
		!floatEqual(old.Sticks.Right.Position.X, next.Sticks.Right.Position.X) ||
		!floatEqual(old.Sticks.Right.Position.Y, next.Sticks.Right.Position.Y) ||
		old.Sticks.Right.Pressed != next.Sticks.Right.Pressed ||
		old.Sticks.Right.Drifting != next.Sticks.Right.Drifting {
		d.Sticks = &next.Sticks
	}

	if !floatEqual(old.Triggers.L2.Value, next.Triggers.L2.Value) ||
		!floatEqual(old.Triggers.R2.Value, next.Triggers.R2.Value) {
		d.Triggers = &next.Triggers
	}

	if old.Deadzone != next.Deadzone {
		d.Deadzone = &next.Deadzone
	}
	if old.Debug != next.Debug {
		d.Debug = &next.Debug
	}

	return d
}
