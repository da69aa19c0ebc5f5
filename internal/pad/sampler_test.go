package pad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleDisconnected(t *testing.T) {
	snap := Sample(Disconnected{})
	assert.Empty(t, snap.Axes)
	assert.Empty(t, snap.Buttons)
	assert.Empty(t, snap.Hats)
}

func TestSampleReadsCapabilityCounts(t *testing.T) {
	dev := newFakeDevice("Pad",
		[]float64{0.1, -0.2, 0.3},
		[]bool{true, false},
		[]HatVector{{X: 1, Y: 0}})
	conn := Connected{Device: dev, Caps: dev.Capabilities(), Name: dev.Name()}

	snap := Sample(conn)

	assert.Equal(t, []float64{0.1, -0.2, 0.3}, snap.Axes)
	assert.Equal(t, []bool{true, false}, snap.Buttons)
	assert.Equal(t, []HatVector{{X: 1, Y: 0}}, snap.Hats)
}

func TestSampleFailedReadSubstitutesDefault(t *testing.T) {
	dev := newFakeDevice("Pad", []float64{0.5, 0.5}, nil, nil)
	dev.failAxes = map[int]bool{1: true}
	conn := Connected{Device: dev, Caps: dev.Capabilities(), Name: dev.Name()}

	snap := Sample(conn)

	assert.Equal(t, []float64{0.5, 0.0}, snap.Axes)
}

func TestSampleCapsBeyondDevice(t *testing.T) {
	// Capabilities captured at open time may exceed what the device
	// answers for (flaky transport); reads past the end default.
	dev := newFakeDevice("Pad", []float64{0.9}, nil, nil)
	conn := Connected{
		Device: dev,
		Caps:   Capabilities{Axes: 3},
		Name:   dev.Name(),
	}

	snap := Sample(conn)

	assert.Equal(t, []float64{0.9, 0.0, 0.0}, snap.Axes)
}
