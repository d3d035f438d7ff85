// Package trace provides decision-trace recording for port scheduling analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Admission sources.
const (
	SourceArrival = "arrival" // decided when the ship finished its approach
	SourceQueue   = "queue"   // decided by a scheduling pass
)

// Reasons a ship is sent to its queue instead of being admitted on arrival,
// in the order they are checked.
const (
	ReasonQueueNotEmpty = "queue_not_empty" // earlier ships of its type are waiting
	ReasonEntranceBusy  = "entrance_busy"
	ReasonNoPier        = "no_pier" // no free pier with the required content
)

// DeferReasons lists every reason in check order.
var DeferReasons = []string{ReasonQueueNotEmpty, ReasonEntranceBusy, ReasonNoPier}

// AdmissionRecord captures a single admission decision: a ship either got a
// pier reserved (Admitted) or was sent to its queue (Reason says why).
type AdmissionRecord struct {
	ShipID   string
	ShipType string
	Clock    int64
	Source   string
	Admitted bool
	Pier     int // reserved pier, -1 when not admitted
	Reason   string
}

// Entrance directions.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// EntranceRecord captures a grant of the entrance mutex.
type EntranceRecord struct {
	ShipID    string
	Clock     int64 // tick the entrance was granted
	Direction string
	Waited    int64 // ticks between request and grant
}
