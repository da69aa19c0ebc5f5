package pad

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DeviceID identifies a device instance within a backend.
type DeviceID uint32

// Backend abstracts the platform joystick layer. internal/sdljoy provides
// the SDL3 implementation; tests provide fakes.
type Backend interface {
	// Init brings up the joystick subsystem. Failure here is the only
	// fatal condition in the pipeline.
	Init() error
	Quit()
	// Pump processes pending hot-plug events so Devices reflects the
	// currently attached hardware.
	Pump()
	Devices() []DeviceID
	Open(id DeviceID) (Device, error)
}

// Device is an open joystick handle. Reads return ok=false when the index
// is out of range or the read failed; callers substitute defaults.
type Device interface {
	Name() string
	Capabilities() Capabilities
	Axis(i int) (float64, bool)
	Button(i int) (bool, bool)
	Hat(i int) (HatVector, bool)
	Rumble(left, right float64, d time.Duration) error
	Connected() bool
	Close()
}

// Connection is the device presence state. It is a sealed two-variant
// type so every consumer handles the disconnected case explicitly.
type Connection interface {
	isConnection()
}

// Disconnected means no device is open. This is the normal idle state,
// not an error.
type Disconnected struct{}

// Connected wraps the open device with the capabilities captured at open
// time.
type Connected struct {
	Device Device
	Caps   Capabilities
	Name   string
}

func (Disconnected) isConnection() {}
func (Connected) isConnection()    {}

// Registry tracks at most one open device, first-enumerated wins. It is
// the exclusive owner of the device handle; no other component opens,
// reads capability counts from, or closes it directly.
type Registry struct {
	backend Backend
	table   *Table
	log     *zap.Logger

	mu   sync.RWMutex
	conn Connection
}

func NewRegistry(backend Backend, table *Table, log *zap.Logger) *Registry {
	return &Registry{
		backend: backend,
		table:   table,
		log:     log,
		conn:    Disconnected{},
	}
}

// Start initializes the underlying backend. This is the one failure the
// pipeline refuses to proceed past.
func (r *Registry) Start() error {
	if err := r.backend.Init(); err != nil {
		return fmt.Errorf("joystick subsystem init: %w", err)
	}
	return nil
}

// Stop closes the open device, if any, and shuts the backend down.
func (r *Registry) Stop() {
	r.mu.Lock()
	if c, ok := r.conn.(Connected); ok {
		c.Device.Close()
		r.conn = Disconnected{}
	}
	r.mu.Unlock()
	r.backend.Quit()
}

// Rescan reconciles the open handle with the attached hardware and
// returns the current capability counts (all-zero when disconnected).
// Safe to call every tick; when the same device stays present it only
// pumps events. Additional devices are ignored until the active one is
// removed.
func (r *Registry) Rescan() Capabilities {
	r.backend.Pump()

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.conn.(Connected); ok {
		if c.Device.Connected() {
			return c.Caps
		}
		r.log.Info("controller disconnected", zap.String("name", c.Name))
		c.Device.Close()
		r.conn = Disconnected{}
	}

	ids := r.backend.Devices()
	if len(ids) == 0 {
		return Capabilities{}
	}

	dev, err := r.backend.Open(ids[0])
	if err != nil {
		r.log.Warn("failed to open controller", zap.Uint32("id", uint32(ids[0])), zap.Error(err))
		return Capabilities{}
	}

	caps := dev.Capabilities()
	r.conn = Connected{Device: dev, Caps: caps, Name: dev.Name()}
	r.log.Info("controller connected",
		zap.String("name", dev.Name()),
		zap.Int("axes", caps.Axes),
		zap.Int("buttons", caps.Buttons),
		zap.Int("hats", caps.Hats))
	if r.table != nil {
		r.table.Validate(caps, r.log)
	}
	return caps
}

// IsPresent reports whether a device is currently open.
func (r *Registry) IsPresent() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conn.(Connected)
	return ok
}

// Connection returns the current presence state.
func (r *Registry) Connection() Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conn
}
