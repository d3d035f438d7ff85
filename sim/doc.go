// Package sim provides the discrete-event simulation engine for portsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - ship.go: Ship lifecycle states, ship types and cargo
//   - port.go, pier.go: the piers and the single-slot entrance mutex
//   - event.go: Event types that drive the simulation (Spawn, Arrival, transits, SchedulingPass)
//   - lifecycle.go: what each event does to a ship, the port and the queues
//   - scheduler.go: the per-type FIFO queues and the scheduling pass
//
// # Policies
//
// Ship-type behaviour (which pier content a ship may reserve, what servicing
// does) is a lookup table in policy.go. Piers are matched lowest index
// first. The load queue is scanned before the unload queue and a pass admits
// at most one ship. The entrance grants waiting ships in request order.
//
// # Time
//
// One tick is one simulated millisecond. Run drains the event queue up to the
// horizon; RunUntil lets a driver (the serve command, or a test) advance time
// in steps. Collaborators that animate or display ships (Mover, LogSink) are
// notified synchronously and never block the loop.
//
// Sub-packages:
//   - sim/trace/: admission and entrance decision records
//   - sim/observe/: HTTP and WebSocket publication of snapshots
package sim
