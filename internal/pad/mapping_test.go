package pad

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultTableLookups(t *testing.T) {
	table := DefaultTable()

	ch, ok := table.ChannelFor(ChanLeftStickX)
	require.True(t, ok)
	assert.Equal(t, KindAxis, ch.Kind)
	assert.Equal(t, 0, ch.Index)

	ch, ok = table.ChannelFor(ChanTriggerRight)
	require.True(t, ok)
	assert.Equal(t, KindAxis, ch.Kind)
	assert.Equal(t, 5, ch.Index)

	ch, ok = table.ChannelFor(ChanButtonTouchpad)
	require.True(t, ok)
	assert.Equal(t, KindButton, ch.Kind)
	assert.Equal(t, 13, ch.Index)

	ch, ok = table.ChannelFor(ChanDpad)
	require.True(t, ok)
	assert.Equal(t, KindHat, ch.Kind)
}

func TestChannelForMissIsNotFatal(t *testing.T) {
	_, ok := DefaultTable().ChannelFor("gyro-x")
	assert.False(t, ok)
}

func TestLoadTableOverridesDefaults(t *testing.T) {
	path := writeTempMapping(t, `
channels:
  - name: left-stick-x
    kind: axis
    index: 2
  - name: button-cross
    kind: button
    index: 1
`)
	table, err := LoadTable(path)
	require.NoError(t, err)

	ch, ok := table.ChannelFor(ChanLeftStickX)
	require.True(t, ok)
	assert.Equal(t, 2, ch.Index)

	ch, ok = table.ChannelFor(ChanButtonCross)
	require.True(t, ok)
	assert.Equal(t, 1, ch.Index)

	// Untouched defaults survive.
	ch, ok = table.ChannelFor(ChanRightStickY)
	require.True(t, ok)
	assert.Equal(t, 3, ch.Index)
}

func TestLoadTableRejectsUnknownName(t *testing.T) {
	// A typo like "left-stikc-x" must fail the load, not end up as an
	// orphan entry nothing reads.
	path := writeTempMapping(t, `
channels:
  - name: left-stikc-x
    kind: axis
    index: 0
`)
	table, err := LoadTable(path)
	require.Error(t, err)
	assert.Nil(t, table)
}

func TestLoadTableRejectsUnknownKind(t *testing.T) {
	path := writeTempMapping(t, `
channels:
  - name: left-stick-x
    kind: rotary
    index: 0
`)
	_, err := LoadTable(path)
	assert.Error(t, err)
}

func TestLoadTableRejectsNegativeIndex(t *testing.T) {
	path := writeTempMapping(t, `
channels:
  - name: dpad
    kind: hat
    index: -1
`)
	_, err := LoadTable(path)
	assert.Error(t, err)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateDoesNotReject(t *testing.T) {
	// Validation is best-effort diagnostics: a table mapped far beyond
	// the device only warns, and reads keep defaulting downstream.
	table := DefaultTable()
	table.Validate(Capabilities{Axes: 2, Buttons: 4, Hats: 0}, zap.NewNop())

	snap := RawSnapshot{Axes: []float64{0.1, 0.2}, Buttons: []bool{false, true, false, false}}
	s := Normalize(snap, table)
	assert.Equal(t, 0.1, s.Sticks.Left.Position.X)
	assert.Zero(t, s.Triggers.L2.Value)
}

func writeTempMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
