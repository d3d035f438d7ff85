package sim

import "math/rand"

// Spawner decides when a ship may be created and of which type.
// The live-ship cap bounds active ships, not queue length: an attempt made
// at the cap is dropped, never deferred.
type Spawner struct {
	cfg     SpawnConfig
	rng     *rand.Rand
	stopped bool
}

// NewSpawner creates a spawner drawing ship types from rng.
func NewSpawner(cfg SpawnConfig, rng *rand.Rand) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

// Active reports whether spawn attempts are still made at tick now.
func (sp *Spawner) Active(now int64) bool {
	if sp.stopped {
		return false
	}
	return sp.cfg.StopAfterMs == 0 || now <= sp.cfg.StopAfterMs
}

// Stop ends spawning for the rest of the run.
func (sp *Spawner) Stop() {
	sp.stopped = true
}

// Stopped reports whether Stop was called.
func (sp *Spawner) Stopped() bool {
	return sp.stopped
}

// Allow reports whether a ship may be created while live ships are active.
func (sp *Spawner) Allow(live int) bool {
	return live < sp.cfg.MaxShips
}

// NextType draws the type of the next ship.
func (sp *Spawner) NextType() ShipType {
	if sp.rng.Float64() < sp.cfg.UnloadProbability {
		return ShipTypeUnload
	}
	return ShipTypeLoad
}

// Interval returns the ticks between spawn attempts.
func (sp *Spawner) Interval() int64 {
	return sp.cfg.IntervalMs
}
