// Package sdljoy implements pad.Backend on top of the SDL3 joystick API.
// It is the only package that performs hardware I/O.
package sdljoy

import (
	"fmt"
	"math"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"go.uber.org/zap"

	"github.com/padscope/padscope/internal/pad"
)

// SDL hat bitmask values.
const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

type Backend struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Backend {
	return &Backend{log: log}
}

func (b *Backend) Init() error {
	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("sdl init: %s", sdl.GetError())
	}
	b.log.Info("SDL3 joystick subsystem initialized")
	return nil
}

func (b *Backend) Quit() {
	sdl.Quit()
}

// Pump drains the SDL event queue so hot-plug state is current. Device
// bookkeeping happens in the registry; here the events are only logged.
func (b *Backend) Pump() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			b.log.Debug("joystick added", zap.Uint32("id", uint32(event.JDevice().Which)))
		case sdl.EventJoystickRemoved:
			b.log.Debug("joystick removed", zap.Uint32("id", uint32(event.JDevice().Which)))
		}
	}
}

func (b *Backend) Devices() []pad.DeviceID {
	ids := sdl.GetJoysticks()
	out := make([]pad.DeviceID, len(ids))
	for i, id := range ids {
		out[i] = pad.DeviceID(id)
	}
	return out
}

func (b *Backend) Open(id pad.DeviceID) (pad.Device, error) {
	js := sdl.OpenJoystick(sdl.JoystickID(id))
	if js == nil {
		return nil, fmt.Errorf("open joystick %d: %s", id, sdl.GetError())
	}

	d := &device{
		js:      js,
		name:    sdl.GetJoystickName(js),
		axes:    int(sdl.GetNumJoystickAxes(js)),
		buttons: int(sdl.GetNumJoystickButtons(js)),
		hats:    int(sdl.GetNumJoystickHats(js)),
		log:     b.log,
	}
	b.log.Debug("joystick opened",
		zap.String("name", d.name),
		zap.Uint16("vendor", sdl.GetJoystickVendor(js)),
		zap.Uint16("product", sdl.GetJoystickProduct(js)))
	return d, nil
}

type device struct {
	js      *sdl.Joystick
	name    string
	axes    int
	buttons int
	hats    int
	log     *zap.Logger
}

func (d *device) Name() string { return d.name }

func (d *device) Capabilities() pad.Capabilities {
	return pad.Capabilities{Axes: d.axes, Buttons: d.buttons, Hats: d.hats}
}

// Axis returns the reading scaled from int16 range to [-1, 1].
func (d *device) Axis(i int) (float64, bool) {
	if i < 0 || i >= d.axes {
		return 0, false
	}
	v := float64(sdl.GetJoystickAxis(d.js, int32(i))) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v, true
}

func (d *device) Button(i int) (bool, bool) {
	if i < 0 || i >= d.buttons {
		return false, false
	}
	return sdl.GetJoystickButton(d.js, int32(i)), true
}

func (d *device) Hat(i int) (pad.HatVector, bool) {
	if i < 0 || i >= d.hats {
		return pad.HatVector{}, false
	}
	mask := sdl.GetJoystickHat(d.js, int32(i))
	var v pad.HatVector
	if mask&hatRight != 0 {
		v.X = 1
	} else if mask&hatLeft != 0 {
		v.X = -1
	}
	if mask&hatUp != 0 {
		v.Y = 1
	} else if mask&hatDown != 0 {
		v.Y = -1
	}
	return v, true
}

func (d *device) Rumble(left, right float64, dur time.Duration) error {
	lo := uint16(clamp01(left) * math.MaxUint16)
	hi := uint16(clamp01(right) * math.MaxUint16)
	if !sdl.RumbleJoystick(d.js, lo, hi, uint32(dur/time.Millisecond)) {
		return fmt.Errorf("rumble: %s", sdl.GetError())
	}
	return nil
}

func (d *device) Connected() bool {
	return sdl.JoystickConnected(d.js)
}

func (d *device) Close() {
	sdl.CloseJoystick(d.js)
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
