package pad

import "math"

// Deadzone bounds and adjustment step. The deadzone is the magnitude
// below which resting stick output is treated as noise rather than drift.
const (
	DeadzoneMin  = 0.0
	DeadzoneMax  = 0.5
	DeadzoneStep = 0.01
)

// Classify reports whether a stick at (x, y) is drifting for the given
// deadzone: either axis magnitude strictly above the threshold. Pure and
// stateless; a stick hovering exactly at the boundary may flicker between
// frames, which is accepted behavior.
func Classify(x, y, deadzone float64) bool {
	return math.Abs(x) > deadzone || math.Abs(y) > deadzone
}

// Config is the process-lifetime engine configuration. It is owned by the
// engine and mutated only through the methods below, applied at tick
// start — never from the sampling or normalization path.
type Config struct {
	deadzone float64
	debug    bool
}

func NewConfig(deadzone float64, debug bool) *Config {
	return &Config{deadzone: clampDeadzone(deadzone), debug: debug}
}

func (c *Config) Deadzone() float64 { return c.deadzone }
func (c *Config) Debug() bool       { return c.debug }

// IncreaseDeadzone raises the deadzone by one step, saturating at
// DeadzoneMax, and returns the new value.
func (c *Config) IncreaseDeadzone() float64 {
	c.deadzone = clampDeadzone(snapToStep(c.deadzone + DeadzoneStep))
	return c.deadzone
}

// DecreaseDeadzone lowers the deadzone by one step, saturating at
// DeadzoneMin, and returns the new value.
func (c *Config) DecreaseDeadzone() float64 {
	c.deadzone = clampDeadzone(snapToStep(c.deadzone - DeadzoneStep))
	return c.deadzone
}

// ToggleDebug flips debug verbosity and returns the new state.
func (c *Config) ToggleDebug() bool {
	c.debug = !c.debug
	return c.debug
}

func clampDeadzone(v float64) float64 {
	if v < DeadzoneMin {
		return DeadzoneMin
	}
	if v > DeadzoneMax {
		return DeadzoneMax
	}
	return v
}

// snapToStep keeps adjusted values on the step grid so repeated
// adjustment never accumulates float error. Only the mutators snap; an
// off-grid initial deadzone is kept as configured.
func snapToStep(v float64) float64 {
	return math.Round(v/DeadzoneStep) * DeadzoneStep
}
