package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/portsim/portsim/sim"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parseSimFlags(t *testing.T, args ...string) (*simFlags, *pflag.FlagSet) {
	t.Helper()
	var f simFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse(args))
	return &f, fs
}

func TestBuildConfig_NoFlags_IsDefault(t *testing.T) {
	f, fs := parseSimFlags(t)

	cfg, err := f.buildConfig(fs)

	require.NoError(t, err)
	assert.Equal(t, sim.DefaultSimConfig(), cfg)
}

func TestBuildConfig_OnlyChangedFlagsOverrideFile(t *testing.T) {
	// GIVEN a config file with seed 7 and 2 piers
	path := writeFile(t, "port.yaml", "seed: 7\nport:\n  piers: 2\n")

	// WHEN only --piers is passed on the command line
	f, fs := parseSimFlags(t, "--config", path, "--piers", "3", "--filled-piers", "0,2")
	cfg, err := f.buildConfig(fs)

	// THEN the file's seed survives the flag default
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 3, cfg.Port.Piers)
	assert.Equal(t, []int{0, 2}, cfg.Port.InitialFilled)
}

func TestBuildConfig_InvalidResultRejected(t *testing.T) {
	f, fs := parseSimFlags(t, "--max-ships", "0")

	_, err := f.buildConfig(fs)

	assert.ErrorContains(t, err, "max_ships")
}
