package sim

import "fmt"

// Entrance is the single-slot mutex guarding the port's only transit channel.
// Requests that arrive while it is held wait in FIFO order, so a leaving ship
// and an entering ship are served in the order they asked.
type Entrance struct {
	holder  string
	waiters []string
}

// Busy reports whether a ship holds the entrance.
func (e *Entrance) Busy() bool {
	return e.holder != ""
}

// Holder returns the ID of the ship holding the entrance, or "".
func (e *Entrance) Holder() string {
	return e.holder
}

// Waiters returns the pending requests in grant order.
// Callers MUST NOT mutate the returned slice.
func (e *Entrance) Waiters() []string {
	return e.waiters
}

func (e *Entrance) isWaiting(shipID string) bool {
	for _, id := range e.waiters {
		if id == shipID {
			return true
		}
	}
	return false
}

// Port is the facility coordinator: it owns the pier registry and the entrance.
// It raises no errors; invalid pier indices are absorbed silently.
type Port struct {
	Piers    *PierRegistry
	Entrance *Entrance
}

// NewPort creates a port whose piers start with the given contents.
func NewPort(contents []PierContent) *Port {
	return &Port{
		Piers:    NewPierRegistry(contents),
		Entrance: &Entrance{},
	}
}

// CanServe reports whether a free pier matches ship type t. Side-effect free.
func (p *Port) CanServe(t ShipType) bool {
	_, ok := p.Piers.FindAvailableFor(t)
	return ok
}

// FindPierFor returns the pier a ship of type t would be assigned.
func (p *Port) FindPierFor(t ShipType) (int, bool) {
	return p.Piers.FindAvailableFor(t)
}

// ReservePier reserves pier i for shipID. Returns false if the pier is invalid or occupied.
func (p *Port) ReservePier(i int, shipID string, now int64) bool {
	return p.Piers.Reserve(i, shipID, now)
}

// ReleasePier frees pier i. Releasing a free pier is a no-op.
func (p *Port) ReleasePier(i int, now int64) {
	p.Piers.Release(i, now)
}

// EntranceBusy reports whether the entrance mutex is held.
func (p *Port) EntranceBusy() bool {
	return p.Entrance.Busy()
}

// RequestEntrance grants the entrance to shipID if it is free, otherwise
// appends shipID to the waiters. Returns true when granted immediately.
// Repeated requests from a waiting ship do not duplicate its place.
func (p *Port) RequestEntrance(shipID string) bool {
	e := p.Entrance
	if e.holder == shipID {
		panic(fmt.Sprintf("RequestEntrance: %s already holds the entrance", shipID))
	}
	if !e.Busy() {
		e.holder = shipID
		return true
	}
	if !e.isWaiting(shipID) {
		e.waiters = append(e.waiters, shipID)
	}
	return false
}

// ReleaseEntrance releases the entrance held by shipID and hands it to the
// first waiter in the same step. Returns the new holder, if any.
// Releasing an entrance the ship does not hold is an invariant violation.
func (p *Port) ReleaseEntrance(shipID string) (string, bool) {
	e := p.Entrance
	if e.holder != shipID {
		panic(fmt.Sprintf("ReleaseEntrance: %s does not hold the entrance (holder %q)", shipID, e.holder))
	}
	e.holder = ""
	if len(e.waiters) == 0 {
		return "", false
	}
	next := e.waiters[0]
	e.waiters = e.waiters[1:]
	e.holder = next
	return next, true
}

// EntranceHolder returns the ID of the ship holding the entrance, or "".
func (p *Port) EntranceHolder() string {
	return p.Entrance.Holder()
}
