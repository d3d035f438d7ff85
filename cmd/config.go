package cmd

import (
	"github.com/spf13/pflag"

	sim "github.com/portsim/portsim/sim"
)

// simFlags are the command-line overrides shared by run and serve.
type simFlags struct {
	configPath    string
	seed          int64
	horizon       int64
	piers         int
	filledPiers   []int
	maxShips      int
	spawnInterval int64
	unloadProb    float64
	stopAfter     int64
	serviceMs     int64
	strict        bool
}

func (f *simFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to a simulation config file (.yaml, .yml or .toml)")
	fs.Int64Var(&f.seed, "seed", 42, "Seed for ship type and spawn jitter generation")
	fs.Int64Var(&f.horizon, "horizon", sim.DefaultHorizon, "Total simulation horizon (in ticks, 1 tick = 1 ms)")
	fs.IntVar(&f.piers, "piers", 4, "Number of piers")
	fs.IntSliceVar(&f.filledPiers, "filled-piers", nil, "Comma-separated indices of piers that start filled")
	fs.IntVar(&f.maxShips, "max-ships", 10, "Maximum number of live ships")
	fs.Int64Var(&f.spawnInterval, "spawn-interval", 8000, "Ticks between spawn attempts")
	fs.Float64Var(&f.unloadProb, "unload-probability", 0.5, "Probability that a new ship is an unload ship")
	fs.Int64Var(&f.stopAfter, "stop-after", 0, "Stop spawning after this tick (0 = never)")
	fs.Int64Var(&f.serviceMs, "service-ms", 5000, "Ticks a ship spends at its pier")
	fs.BoolVar(&f.strict, "strict", false, "Check invariants after every event and panic on violation")
}

// buildConfig loads the config file, if any, then applies only the flags the
// user actually set, so file values are not clobbered by flag defaults.
func (f *simFlags) buildConfig(fs *pflag.FlagSet) (sim.SimConfig, error) {
	cfg := sim.DefaultSimConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = sim.LoadSimConfig(f.configPath); err != nil {
			return cfg, err
		}
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("horizon") {
		cfg.Horizon = f.horizon
	}
	if fs.Changed("piers") {
		cfg.Port.Piers = f.piers
	}
	if fs.Changed("filled-piers") {
		cfg.Port.InitialFilled = f.filledPiers
	}
	if fs.Changed("max-ships") {
		cfg.Spawn.MaxShips = f.maxShips
	}
	if fs.Changed("spawn-interval") {
		cfg.Spawn.IntervalMs = f.spawnInterval
	}
	if fs.Changed("unload-probability") {
		cfg.Spawn.UnloadProbability = f.unloadProb
	}
	if fs.Changed("stop-after") {
		cfg.Spawn.StopAfterMs = f.stopAfter
	}
	if fs.Changed("service-ms") {
		cfg.Timing.ServiceMs = f.serviceMs
	}
	if fs.Changed("strict") {
		cfg.StrictInvariants = f.strict
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
