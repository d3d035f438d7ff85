package sim

import "sort"

// ShipView is the read-only view of a ship handed to renderers.
type ShipView struct {
	ID           string    `json:"id"`
	Type         ShipType  `json:"type"`
	Label        string    `json:"label"`
	Color        string    `json:"color"`
	State        ShipState `json:"state"`
	Cargo        bool      `json:"cargo"`
	AssignedPier int       `json:"assigned_pier"`
	QueueIndex   int       `json:"queue_index"` // -1 when not queued
	Position     Position  `json:"position"`
	Motion       Motion    `json:"motion"`
}

// PierView is the read-only view of a pier.
type PierView struct {
	Index      int         `json:"index"`
	Occupied   bool        `json:"occupied"`
	Content    PierContent `json:"content"`
	OccupiedBy string      `json:"occupied_by,omitempty"`
	Origin     Position    `json:"origin"`
}

// Snapshot is a consistent copy of the observable simulation state.
type Snapshot struct {
	RunID           string              `json:"run_id"`
	Clock           int64               `json:"clock"`
	Ships           []ShipView          `json:"ships"`
	Piers           []PierView          `json:"piers"`
	EntranceHolder  string              `json:"entrance_holder,omitempty"`
	EntranceWaiters []string            `json:"entrance_waiters"`
	Queues          map[string][]string `json:"queues"`
	Spawned         int                 `json:"spawned"`
	Completed       int                 `json:"completed"`
	Dropped         int                 `json:"dropped"`
	SpawningStopped bool                `json:"spawning_stopped"`
	Stalled         bool                `json:"stalled"`
	Log             []string            `json:"log,omitempty"`
}

// Snapshot copies the current state. Ships are ordered by spawn sequence.
// The result shares no memory with the simulator.
func (sim *Simulator) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:           sim.RunID,
		Clock:           sim.Clock,
		Ships:           make([]ShipView, 0, len(sim.Ships)),
		Piers:           make([]PierView, 0, sim.Port.Piers.Len()),
		EntranceHolder:  sim.Port.EntranceHolder(),
		EntranceWaiters: append([]string{}, sim.Port.Entrance.Waiters()...),
		Queues:          make(map[string][]string, len(ShipTypes)),
		Spawned:         sim.Metrics.SpawnedShips,
		Completed:       sim.Metrics.CompletedShips,
		Dropped:         sim.Metrics.DroppedSpawns,
		SpawningStopped: !sim.Spawner.Active(sim.Clock),
		Stalled:         sim.Metrics.Stalled,
	}
	for _, t := range ShipTypes {
		snap.Queues[t.String()] = sim.Queues.Queue(t).IDs()
	}
	for _, s := range sim.Ships {
		pol := policyFor(s.Type)
		snap.Ships = append(snap.Ships, ShipView{
			ID:           s.ID,
			Type:         s.Type,
			Label:        pol.Label,
			Color:        pol.Color,
			State:        s.State,
			Cargo:        s.Cargo,
			AssignedPier: s.AssignedPier,
			QueueIndex:   sim.Queues.Queue(s.Type).Index(s.ID),
			Position:     s.Motion.At(sim.Clock),
			Motion:       s.Motion,
		})
	}
	sort.Slice(snap.Ships, func(i, j int) bool {
		return sim.Ships[snap.Ships[i].ID].Seq < sim.Ships[snap.Ships[j].ID].Seq
	})
	for _, p := range sim.Port.Piers.Items() {
		snap.Piers = append(snap.Piers, PierView{
			Index:      p.Index,
			Occupied:   p.Occupied,
			Content:    p.Content,
			OccupiedBy: p.OccupiedBy,
			Origin:     sim.Config.Layout.PierOrigin(p.Index),
		})
	}
	if sim.HUD != nil {
		snap.Log = sim.HUD.Lines()
	}
	return snap
}
