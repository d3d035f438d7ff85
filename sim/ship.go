// Defines the Ship struct that models a single vessel moving through the port.
// Tracks type, lifecycle state, cargo, the reserved pier and the timestamps
// used for queue-wait and turnaround metrics.

package sim

import (
	"fmt"
)

// ShipType is the closed set of ship classes. The matching and servicing
// rules for each class live in the policy table (policy.go).
type ShipType int

const (
	// ShipTypeUnload arrives loaded and unloads into an empty pier ("RED").
	ShipTypeUnload ShipType = iota
	// ShipTypeLoad arrives empty and loads from a filled pier ("GREEN").
	ShipTypeLoad
)

// ShipTypes lists every ship type in scheduling-pass order.
var ShipTypes = []ShipType{ShipTypeLoad, ShipTypeUnload}

func (t ShipType) String() string {
	switch t {
	case ShipTypeUnload:
		return "unload"
	case ShipTypeLoad:
		return "load"
	default:
		return fmt.Sprintf("ShipType(%d)", int(t))
	}
}

// MarshalText renders the type as its lowercase name in JSON snapshots.
func (t ShipType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a type name produced by MarshalText.
func (t *ShipType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unload":
		*t = ShipTypeUnload
	case "load":
		*t = ShipTypeLoad
	default:
		return fmt.Errorf("unknown ship type %q", b)
	}
	return nil
}

// ShipState represents the lifecycle state of a ship.
type ShipState string

const (
	StateSpawning    ShipState = "spawning"
	StateApproaching ShipState = "approaching"
	StateQueued      ShipState = "queued"
	StateEntering    ShipState = "entering"
	StateToPier      ShipState = "to_pier"
	StateServicing   ShipState = "servicing"
	StateLeaving     ShipState = "leaving"
	StateExiting     ShipState = "exiting"
	StateDone        ShipState = "done"
)

// NoPier marks a ship without a reserved pier.
const NoPier = -1

// Ship models a single ship's lifecycle in the simulation.
// Only the Simulator mutates a Ship; renderers read it through Snapshot.
type Ship struct {
	ID   string   // Unique identifier, assigned at spawn
	Seq  int      // Spawn sequence number, used for stable ordering
	Type ShipType // Fixed at spawn

	State        ShipState
	Cargo        bool // true while the ship carries cargo
	AssignedPier int  // Reserved pier index, NoPier when none

	Motion Motion // Current (or last) movement, for presentation

	SpawnTime     int64 // Tick the ship was created
	QueuedAt      int64 // Tick the ship last entered a queue (-1 if never queued)
	AdmittedAt    int64 // Tick the pier was reserved
	EntranceAskAt int64 // Tick of the pending entrance request
	DoneAt        int64 // Tick the ship left the simulation
	QueueWait     int64 // Total ticks spent in a queue
	EntranceWait  int64 // Total ticks spent waiting for the entrance
}

func newShip(seq int, t ShipType, now int64) *Ship {
	return &Ship{
		ID:           fmt.Sprintf("ship-%d", seq),
		Seq:          seq,
		Type:         t,
		State:        StateSpawning,
		Cargo:        policyFor(t).InitialCargo,
		AssignedPier: NoPier,
		SpawnTime:    now,
		QueuedAt:     -1,
		AdmittedAt:   -1,
	}
}

// HasPier reports whether the ship currently holds a pier reservation.
func (s *Ship) HasPier() bool {
	return s.AssignedPier != NoPier
}

// Label returns the human-readable class label used in log messages.
func (s *Ship) Label() string {
	return policyFor(s.Type).Label
}

// This method returns a human-readable string representation of a Ship.
func (s Ship) String() string {
	return fmt.Sprintf("Ship: (ID: %s, Type: %s, State: %s, Cargo: %v, Pier: %d)", s.ID, s.Type, s.State, s.Cargo, s.AssignedPier)
}
