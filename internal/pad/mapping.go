package pad

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ChannelKind distinguishes the three raw input classes a channel can
// map to.
type ChannelKind int

const (
	KindAxis ChannelKind = iota
	KindButton
	KindHat
)

func (k ChannelKind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindButton:
		return "button"
	case KindHat:
		return "hat"
	default:
		return "unknown"
	}
}

// Channel maps a semantic input name to a raw device index. Immutable
// after the table is built.
type Channel struct {
	Name  string
	Kind  ChannelKind
	Index int
}

// Semantic channel names understood by the normalizer. A table may map
// any subset of these; lookups for unmapped names simply miss.
const (
	ChanLeftStickX  = "left-stick-x"
	ChanLeftStickY  = "left-stick-y"
	ChanRightStickX = "right-stick-x"
	ChanRightStickY = "right-stick-y"

	ChanTriggerLeft  = "trigger-left"
	ChanTriggerRight = "trigger-right"

	// Digital fallbacks used when a trigger has no axis on this device.
	ChanTriggerLeftButton  = "trigger-left-button"
	ChanTriggerRightButton = "trigger-right-button"

	ChanButtonCross    = "button-cross"
	ChanButtonCircle   = "button-circle"
	ChanButtonSquare   = "button-square"
	ChanButtonTriangle = "button-triangle"
	ChanButtonL1       = "button-l1"
	ChanButtonR1       = "button-r1"
	ChanButtonShare    = "button-share"
	ChanButtonOptions  = "button-options"
	ChanButtonL3       = "button-l3"
	ChanButtonR3       = "button-r3"
	ChanButtonPS       = "button-ps"
	ChanButtonTouchpad = "button-touchpad"

	ChanDpad = "dpad"
)

// Table is the semantic-name to raw-index mapping. Swapping hardware
// vendors means swapping the table, not the pipeline. Indices are not
// validated against any device here; mismatches are resolved downstream
// by defaulting.
type Table struct {
	channels map[string]Channel
}

// ChannelFor looks up a channel by semantic name. A miss is not an
// error; callers substitute a default value.
func (t *Table) ChannelFor(name string) (Channel, bool) {
	ch, ok := t.channels[name]
	return ch, ok
}

// Channels returns all mapped channels in name order.
func (t *Table) Channels() []Channel {
	out := make([]Channel, 0, len(t.channels))
	for _, ch := range t.channels {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate logs a warning for every channel whose raw index lies beyond
// the connected device's reported counts. The mapping stays in effect;
// out-of-range channels read as their defaults. This is a diagnostic aid
// for wrong vendor tables, not an error path.
func (t *Table) Validate(caps Capabilities, log *zap.Logger) {
	for _, ch := range t.Channels() {
		var limit int
		switch ch.Kind {
		case KindAxis:
			limit = caps.Axes
		case KindButton:
			limit = caps.Buttons
		case KindHat:
			limit = caps.Hats
		}
		if ch.Index >= limit {
			log.Warn("channel index beyond device capabilities, reads will default",
				zap.String("channel", ch.Name),
				zap.String("kind", ch.Kind.String()),
				zap.Int("index", ch.Index),
				zap.Int("available", limit))
		}
	}
}

func newTable(channels []Channel) *Table {
	m := make(map[string]Channel, len(channels))
	for _, ch := range channels {
		m[ch.Name] = ch
	}
	return &Table{channels: m}
}

// DefaultTable mirrors the common (but not universal) layout of
// PlayStation-class controllers: sticks on axes 0-3, triggers on axes
// 4/5, one d-pad hat. Button indices follow the usual enumeration order
// and may need a custom table on some platforms.
func DefaultTable() *Table {
	return newTable([]Channel{
		{ChanLeftStickX, KindAxis, 0},
		{ChanLeftStickY, KindAxis, 1},
		{ChanRightStickX, KindAxis, 2},
		{ChanRightStickY, KindAxis, 3},
		{ChanTriggerLeft, KindAxis, 4},
		{ChanTriggerRight, KindAxis, 5},

		{ChanButtonCross, KindButton, 0},
		{ChanButtonCircle, KindButton, 1},
		{ChanButtonSquare, KindButton, 2},
		{ChanButtonTriangle, KindButton, 3},
		{ChanButtonL1, KindButton, 4},
		{ChanButtonR1, KindButton, 5},
		{ChanTriggerLeftButton, KindButton, 6},
		{ChanTriggerRightButton, KindButton, 7},
		{ChanButtonShare, KindButton, 8},
		{ChanButtonOptions, KindButton, 9},
		{ChanButtonL3, KindButton, 10},
		{ChanButtonR3, KindButton, 11},
		{ChanButtonPS, KindButton, 12},
		{ChanButtonTouchpad, KindButton, 13},

		{ChanDpad, KindHat, 0},
	})
}

type tableFile struct {
	Channels []struct {
		Name  string `yaml:"name"`
		Kind  string `yaml:"kind"`
		Index int    `yaml:"index"`
	} `yaml:"channels"`
}

// LoadTable reads a mapping table from a YAML file. Entries override the
// defaults channel by channel, so a table only needs to list what
// differs from the built-in layout. Entries naming a channel the
// normalizer does not know are rejected.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mapping file: %w", err)
	}

	table := DefaultTable()
	for _, e := range f.Channels {
		// Only known semantic names are accepted: a misspelled name
		// would otherwise sit in the table unread and the override
		// would silently do nothing.
		if _, known := table.channels[e.Name]; !known {
			return nil, fmt.Errorf("channel %q: unknown channel name", e.Name)
		}
		var kind ChannelKind
		switch e.Kind {
		case "axis":
			kind = KindAxis
		case "button":
			kind = KindButton
		case "hat":
			kind = KindHat
		default:
			return nil, fmt.Errorf("channel %q: unknown kind %q", e.Name, e.Kind)
		}
		if e.Index < 0 {
			return nil, fmt.Errorf("channel %q: negative index %d", e.Name, e.Index)
		}
		table.channels[e.Name] = Channel{Name: e.Name, Kind: kind, Index: e.Index}
	}
	return table, nil
}
