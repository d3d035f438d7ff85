package sim

import (
	"errors"
	"fmt"
	"math"
)

// PortConfig groups the fixed facility parameters.
type PortConfig struct {
	Piers         int   `yaml:"piers" toml:"piers"`                   // number of piers (must be > 0)
	InitialFilled []int `yaml:"initial_filled" toml:"initial_filled"` // indices of piers that start filled
}

// TimingConfig groups every duration of the ship lifecycle, in ticks (ms).
type TimingConfig struct {
	ApproachMs   int64 `yaml:"approach_ms" toml:"approach_ms"`       // spawn point -> arrival point
	ToEntranceMs int64 `yaml:"to_entrance_ms" toml:"to_entrance_ms"` // arrival/queue -> outside the entrance
	EnterMs      int64 `yaml:"enter_ms" toml:"enter_ms"`             // inbound transit through the channel
	DockMs       int64 `yaml:"dock_ms" toml:"dock_ms"`               // channel -> pier
	ServiceMs    int64 `yaml:"service_ms" toml:"service_ms"`         // time at the pier
	LeaveMs      int64 `yaml:"leave_ms" toml:"leave_ms"`             // pier -> inside the entrance
	ExitMs       int64 `yaml:"exit_ms" toml:"exit_ms"`               // outbound transit through the channel
	DepartMs     int64 `yaml:"depart_ms" toml:"depart_ms"`           // channel -> off scene
	QueueShiftMs int64 `yaml:"queue_shift_ms" toml:"queue_shift_ms"` // slot-to-slot movement inside a queue
}

// SpawnConfig groups ship generation parameters.
type SpawnConfig struct {
	IntervalMs        int64   `yaml:"interval_ms" toml:"interval_ms"`               // ticks between spawn attempts (must be > 0)
	MaxShips          int     `yaml:"max_ships" toml:"max_ships"`                   // cap on live ships (must be > 0)
	UnloadProbability float64 `yaml:"unload_probability" toml:"unload_probability"` // chance a new ship is an unload ship
	StopAfterMs       int64   `yaml:"stop_after_ms" toml:"stop_after_ms"`           // no spawns after this tick (0 = never stop)
}

// SimConfig is the complete, immutable configuration of a simulation run.
type SimConfig struct {
	Horizon          int64        `yaml:"horizon" toml:"horizon"` // last tick to simulate
	Seed             int64        `yaml:"seed" toml:"seed"`
	Port             PortConfig   `yaml:"port" toml:"port"`
	Timing           TimingConfig `yaml:"timing" toml:"timing"`
	Spawn            SpawnConfig  `yaml:"spawn" toml:"spawn"`
	Layout           LayoutConfig `yaml:"layout" toml:"layout"`
	StrictInvariants bool         `yaml:"strict_invariants" toml:"strict_invariants"` // panic on the first invariant violation
}

// DefaultHorizon is ten simulated minutes.
const DefaultHorizon = 10 * 60 * 1000

// DefaultSimConfig reproduces the reference port: four empty piers, a ship
// every 8 s, at most 10 ships, 5 s service.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Horizon: DefaultHorizon,
		Seed:    42,
		Port: PortConfig{
			Piers: 4,
		},
		Timing: TimingConfig{
			ApproachMs:   1200,
			ToEntranceMs: 650,
			EnterMs:      850,
			DockMs:       900,
			ServiceMs:    5000,
			LeaveMs:      950,
			ExitMs:       1100,
			DepartMs:     1400,
			QueueShiftMs: 400,
		},
		Spawn: SpawnConfig{
			IntervalMs:        8000,
			MaxShips:          10,
			UnloadProbability: 0.5,
		},
		Layout: DefaultLayoutConfig(),
	}
}

// Validate checks the configuration and reports every problem found.
func (c SimConfig) Validate() error {
	var errs []error
	if c.Horizon <= 0 {
		errs = append(errs, fmt.Errorf("horizon must be > 0, got %d", c.Horizon))
	}
	if c.Port.Piers <= 0 {
		errs = append(errs, fmt.Errorf("port.piers must be > 0, got %d", c.Port.Piers))
	}
	for _, i := range c.Port.InitialFilled {
		if i < 0 || i >= c.Port.Piers {
			errs = append(errs, fmt.Errorf("port.initial_filled: pier %d out of range [0,%d)", i, c.Port.Piers))
		}
	}
	if c.Spawn.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("spawn.interval_ms must be > 0, got %d", c.Spawn.IntervalMs))
	}
	if c.Spawn.MaxShips <= 0 {
		errs = append(errs, fmt.Errorf("spawn.max_ships must be > 0, got %d", c.Spawn.MaxShips))
	}
	if c.Spawn.UnloadProbability < 0 || c.Spawn.UnloadProbability > 1 || math.IsNaN(c.Spawn.UnloadProbability) {
		errs = append(errs, fmt.Errorf("spawn.unload_probability must be in [0,1], got %v", c.Spawn.UnloadProbability))
	}
	if c.Spawn.StopAfterMs < 0 {
		errs = append(errs, fmt.Errorf("spawn.stop_after_ms must be >= 0, got %d", c.Spawn.StopAfterMs))
	}
	durations := []struct {
		name  string
		value int64
	}{
		{"approach_ms", c.Timing.ApproachMs},
		{"to_entrance_ms", c.Timing.ToEntranceMs},
		{"enter_ms", c.Timing.EnterMs},
		{"dock_ms", c.Timing.DockMs},
		{"service_ms", c.Timing.ServiceMs},
		{"leave_ms", c.Timing.LeaveMs},
		{"exit_ms", c.Timing.ExitMs},
		{"depart_ms", c.Timing.DepartMs},
		{"queue_shift_ms", c.Timing.QueueShiftMs},
	}
	for _, d := range durations {
		if d.value < 0 {
			errs = append(errs, fmt.Errorf("timing.%s must be >= 0, got %d", d.name, d.value))
		}
	}
	return errors.Join(errs...)
}

// initialContents expands PortConfig into per-pier contents.
func (c PortConfig) initialContents() []PierContent {
	contents := make([]PierContent, c.Piers)
	for i := range contents {
		contents[i] = PierEmpty
	}
	for _, i := range c.InitialFilled {
		if i >= 0 && i < c.Piers {
			contents[i] = PierFilled
		}
	}
	return contents
}
