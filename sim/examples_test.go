package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExampleConfigs_BusyPort verifies that busy-port.yaml loads, validates
// and runs with invariant checking enabled.
func TestExampleConfigs_BusyPort(t *testing.T) {
	// GIVEN the busy-port.yaml example config
	cfg, err := LoadSimConfig(filepath.Join("..", "examples", "busy-port.yaml"))
	require.NoError(t, err, "failed to load busy-port.yaml")

	// THEN validation passes and the overrides are applied
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 6, cfg.Port.Piers)
	assert.Equal(t, []PierContent{PierEmpty, PierEmpty, PierEmpty, PierFilled, PierFilled, PierFilled}, cfg.Port.initialContents())
	assert.True(t, cfg.StrictInvariants)
	assert.Equal(t, DefaultSimConfig().Timing.ApproachMs, cfg.Timing.ApproachMs, "unset fields keep defaults")

	// WHEN run
	s, err := NewSimulator(cfg, WithLogSink(discardSink{}))
	require.NoError(t, err)
	s.Run()

	// THEN ships flow through the port
	assert.Greater(t, s.Metrics.CompletedShips, 0)
	assert.LessOrEqual(t, s.Metrics.PeakLiveShips, 16)
}

// TestExampleConfigs_QuietPort verifies that quiet-port.toml loads and that
// its run drains after spawning stops.
func TestExampleConfigs_QuietPort(t *testing.T) {
	// GIVEN the quiet-port.toml example config
	cfg, err := LoadSimConfig(filepath.Join("..", "examples", "quiet-port.toml"))
	require.NoError(t, err, "failed to load quiet-port.toml")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(600000), cfg.Spawn.StopAfterMs)

	// WHEN run
	s, err := NewSimulator(cfg, WithLogSink(discardSink{}))
	require.NoError(t, err)
	s.Run()

	// THEN the event queue empties before the horizon
	assert.True(t, s.Idle())
	assert.Less(t, s.Clock, cfg.Horizon)
}
