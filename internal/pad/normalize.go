package pad

// Semantics is a raw snapshot mapped through the table: named sticks,
// triggers, buttons and d-pad, before drift classification.
type Semantics struct {
	Sticks   SticksState
	Triggers TriggersState
	Buttons  ButtonState
	Dpad     HatVector
}

// Normalize maps a raw snapshot into semantic values. Sticks pass through
// verbatim; deadzone handling belongs to classification, not here. Any
// channel whose mapped index is missing from the snapshot yields its
// zero/false default.
func Normalize(snap RawSnapshot, table *Table) Semantics {
	var s Semantics

	s.Sticks.Left.Position.X = axisValue(snap, table, ChanLeftStickX)
	s.Sticks.Left.Position.Y = axisValue(snap, table, ChanLeftStickY)
	s.Sticks.Right.Position.X = axisValue(snap, table, ChanRightStickX)
	s.Sticks.Right.Position.Y = axisValue(snap, table, ChanRightStickY)
	s.Sticks.Left.Pressed = buttonValue(snap, table, ChanButtonL3)
	s.Sticks.Right.Pressed = buttonValue(snap, table, ChanButtonR3)

	s.Triggers.L2.Value = clamp01(NormalizeTrigger(triggerRaw(snap, table, ChanTriggerLeft, ChanTriggerLeftButton)))
	s.Triggers.R2.Value = clamp01(NormalizeTrigger(triggerRaw(snap, table, ChanTriggerRight, ChanTriggerRightButton)))

	s.Buttons = ButtonState{
		Cross:    buttonValue(snap, table, ChanButtonCross),
		Circle:   buttonValue(snap, table, ChanButtonCircle),
		Square:   buttonValue(snap, table, ChanButtonSquare),
		Triangle: buttonValue(snap, table, ChanButtonTriangle),
		L1:       buttonValue(snap, table, ChanButtonL1),
		R1:       buttonValue(snap, table, ChanButtonR1),
		Share:    buttonValue(snap, table, ChanButtonShare),
		Options:  buttonValue(snap, table, ChanButtonOptions),
		PS:       buttonValue(snap, table, ChanButtonPS),
		Touchpad: buttonValue(snap, table, ChanButtonTouchpad),
	}

	if ch, ok := table.ChannelFor(ChanDpad); ok && ch.Kind == KindHat && ch.Index < len(snap.Hats) {
		s.Dpad = snap.Hats[ch.Index]
	}

	return s
}

// NormalizeTrigger converts a raw trigger reading to [0, 1] using the
// dual-range heuristic: drivers report pulls either as 0..1 or as -1..1
// with -1 meaning released. Readings below -0.2 are taken as the signed
// convention and remapped; the rest pass through. Signed readings between
// -0.2 and 0 are therefore misclassified as near-zero pulls — a known
// ambiguity of the cutoff, kept intentionally. Values outside [-1, 1]
// are out of domain and yield 0.
func NormalizeTrigger(v float64) float64 {
	if v >= -1.0 && v <= 1.0 {
		if v < -0.2 {
			return (v + 1.0) / 2.0
		}
		return v
	}
	return 0.0
}

func axisValue(snap RawSnapshot, table *Table, name string) float64 {
	ch, ok := table.ChannelFor(name)
	if !ok || ch.Kind != KindAxis || ch.Index >= len(snap.Axes) {
		return 0.0
	}
	return snap.Axes[ch.Index]
}

func buttonValue(snap RawSnapshot, table *Table, name string) bool {
	ch, ok := table.ChannelFor(name)
	if !ok || ch.Kind != KindButton || ch.Index >= len(snap.Buttons) {
		return false
	}
	return snap.Buttons[ch.Index]
}

// triggerRaw reads the trigger's axis, or falls back to its digital
// button coerced to 0/1 when no axis is mapped or present.
func triggerRaw(snap RawSnapshot, table *Table, axisName, buttonName string) float64 {
	if ch, ok := table.ChannelFor(axisName); ok && ch.Kind == KindAxis && ch.Index < len(snap.Axes) {
		return snap.Axes[ch.Index]
	}
	if buttonValue(snap, table, buttonName) {
		return 1.0
	}
	return 0.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
