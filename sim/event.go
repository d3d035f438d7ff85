package sim

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in ticks), a Priority that orders events
// sharing a timestamp, and an Execute method that advances simulation state.
type Event interface {
	Timestamp() int64
	Priority() int
	Execute(*Simulator)
}

// Priorities of events sharing a timestamp. Releases run first and the
// scheduling pass runs last, so a pass observes every change of its instant.
const (
	PriorityRelease = iota
	PriorityMotion
	PrioritySpawn
	PriorityPass
)

// SpawnEvent is a spawn attempt. It re-arms itself every spawn interval
// until spawning stops.
type SpawnEvent struct {
	time int64
}

func (e *SpawnEvent) Timestamp() int64 { return e.time }
func (e *SpawnEvent) Priority() int    { return PrioritySpawn }

// Execute creates a ship unless the live-ship cap is reached, then schedules the next attempt.
func (e *SpawnEvent) Execute(sim *Simulator) {
	sim.spawn(e.time)
}

// ArrivalEvent fires when a ship completes its approach to the port.
type ArrivalEvent struct {
	time int64
	Ship *Ship
}

func (e *ArrivalEvent) Timestamp() int64 { return e.time }
func (e *ArrivalEvent) Priority() int    { return PriorityMotion }

// Execute admits the ship directly or puts it in its queue.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	sim.handleArrival(e.Ship)
}

// EntranceReachedEvent fires when an admitted ship reaches the sea side of the channel.
type EntranceReachedEvent struct {
	time int64
	Ship *Ship
}

func (e *EntranceReachedEvent) Timestamp() int64 { return e.time }
func (e *EntranceReachedEvent) Priority() int    { return PriorityMotion }

// Execute requests the entrance for the inbound transit.
func (e *EntranceReachedEvent) Execute(sim *Simulator) {
	sim.requestEntrance(e.Ship)
}

// TransitInDoneEvent fires when an inbound ship is clear of the channel.
type TransitInDoneEvent struct {
	time int64
	Ship *Ship
}

func (e *TransitInDoneEvent) Timestamp() int64 { return e.time }
func (e *TransitInDoneEvent) Priority() int    { return PriorityRelease }

// Execute releases the entrance and starts docking.
func (e *TransitInDoneEvent) Execute(sim *Simulator) {
	sim.finishTransitIn(e.Ship)
}

// DockedEvent fires when a ship is moored at its pier.
type DockedEvent struct {
	time int64
	Ship *Ship
}

func (e *DockedEvent) Timestamp() int64 { return e.time }
func (e *DockedEvent) Priority() int    { return PriorityMotion }

// Execute starts the service timer.
func (e *DockedEvent) Execute(sim *Simulator) {
	sim.startService(e.Ship)
}

// ServiceDoneEvent fires when the fixed service duration has elapsed.
type ServiceDoneEvent struct {
	time int64
	Ship *Ship
}

func (e *ServiceDoneEvent) Timestamp() int64 { return e.time }
func (e *ServiceDoneEvent) Priority() int    { return PriorityRelease }

// Execute swaps cargo between ship and pier, releases the pier and starts leaving.
func (e *ServiceDoneEvent) Execute(sim *Simulator) {
	sim.finishService(e.Ship)
}

// ExitReachedEvent fires when a leaving ship reaches the port side of the channel.
type ExitReachedEvent struct {
	time int64
	Ship *Ship
}

func (e *ExitReachedEvent) Timestamp() int64 { return e.time }
func (e *ExitReachedEvent) Priority() int    { return PriorityMotion }

// Execute requests the entrance for the outbound transit.
func (e *ExitReachedEvent) Execute(sim *Simulator) {
	sim.requestEntrance(e.Ship)
}

// TransitOutDoneEvent fires when an outbound ship is clear of the channel.
type TransitOutDoneEvent struct {
	time int64
	Ship *Ship
}

func (e *TransitOutDoneEvent) Timestamp() int64 { return e.time }
func (e *TransitOutDoneEvent) Priority() int    { return PriorityRelease }

// Execute releases the entrance and starts the departure motion.
func (e *TransitOutDoneEvent) Execute(sim *Simulator) {
	sim.finishTransitOut(e.Ship)
}

// DepartedEvent fires when a ship has left the scene.
type DepartedEvent struct {
	time int64
	Ship *Ship
}

func (e *DepartedEvent) Timestamp() int64 { return e.time }
func (e *DepartedEvent) Priority() int    { return PriorityMotion }

// Execute marks the ship done and disposes of it.
func (e *DepartedEvent) Execute(sim *Simulator) {
	sim.dispose(e.Ship)
}

// SchedulingPassEvent re-evaluates the queues. At most one is pending at a time.
type SchedulingPassEvent struct {
	time int64
}

func (e *SchedulingPassEvent) Timestamp() int64 { return e.time }
func (e *SchedulingPassEvent) Priority() int    { return PriorityPass }

// Execute admits at most one queued ship.
func (e *SchedulingPassEvent) Execute(sim *Simulator) {
	sim.PassEvent = nil
	sim.schedulingPass(e.time)
}
