package pad

import (
	"errors"
	"time"
)

// fakeDevice is an in-memory Device for tests. failAxes marks axis
// indices whose reads should fail.
type fakeDevice struct {
	name      string
	axes      []float64
	buttons   []bool
	hats      []HatVector
	failAxes  map[int]bool
	connected bool
	closed    bool

	rumbleLeft  float64
	rumbleRight float64
	rumbleCalls int
	rumbleErr   error
}

func newFakeDevice(name string, axes []float64, buttons []bool, hats []HatVector) *fakeDevice {
	return &fakeDevice{
		name:      name,
		axes:      axes,
		buttons:   buttons,
		hats:      hats,
		connected: true,
	}
}

func (d *fakeDevice) Name() string { return d.name }

func (d *fakeDevice) Capabilities() Capabilities {
	return Capabilities{Axes: len(d.axes), Buttons: len(d.buttons), Hats: len(d.hats)}
}

func (d *fakeDevice) Axis(i int) (float64, bool) {
	if i < 0 || i >= len(d.axes) || d.failAxes[i] {
		return 0, false
	}
	return d.axes[i], true
}

func (d *fakeDevice) Button(i int) (bool, bool) {
	if i < 0 || i >= len(d.buttons) {
		return false, false
	}
	return d.buttons[i], true
}

func (d *fakeDevice) Hat(i int) (HatVector, bool) {
	if i < 0 || i >= len(d.hats) {
		return HatVector{}, false
	}
	return d.hats[i], true
}

func (d *fakeDevice) Rumble(left, right float64, _ time.Duration) error {
	if d.rumbleErr != nil {
		return d.rumbleErr
	}
	d.rumbleLeft = left
	d.rumbleRight = right
	d.rumbleCalls++
	return nil
}

func (d *fakeDevice) Connected() bool { return d.connected }

func (d *fakeDevice) Close() {
	d.closed = true
	d.connected = false
}

// fakeBackend serves a mutable device list.
type fakeBackend struct {
	devices  map[DeviceID]*fakeDevice
	order    []DeviceID
	initErr  error
	openErr  error
	pumps    int
	quitDone bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{devices: make(map[DeviceID]*fakeDevice)}
}

func (b *fakeBackend) attach(id DeviceID, d *fakeDevice) {
	b.devices[id] = d
	b.order = append(b.order, id)
}

func (b *fakeBackend) detach(id DeviceID) {
	if d, ok := b.devices[id]; ok {
		d.connected = false
	}
	delete(b.devices, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *fakeBackend) Init() error { return b.initErr }
func (b *fakeBackend) Quit()       { b.quitDone = true }
func (b *fakeBackend) Pump()       { b.pumps++ }

func (b *fakeBackend) Devices() []DeviceID {
	out := make([]DeviceID, len(b.order))
	copy(out, b.order)
	return out
}

func (b *fakeBackend) Open(id DeviceID) (Device, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	d, ok := b.devices[id]
	if !ok {
		return nil, errors.New("no such device")
	}
	return d, nil
}
