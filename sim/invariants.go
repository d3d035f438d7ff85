package sim

import (
	"errors"
	"fmt"
)

// CheckInvariants verifies the scheduling invariants against the current
// state and returns every violation found:
//   - the entrance is held by at most one live ship, crossing the channel;
//   - every occupied pier is held by exactly the live ship assigned to it;
//   - a ship only ever holds a pier whose content matches its type;
//   - no ship is queued twice and every queued ship is in StateQueued;
//   - live ships never exceed the configured cap.
//
// A non-nil result is a logic defect; it never describes a recoverable condition.
func (sim *Simulator) CheckInvariants() error {
	var errs []error

	if holder := sim.Port.EntranceHolder(); holder != "" {
		s := sim.Ships[holder]
		switch {
		case s == nil:
			errs = append(errs, fmt.Errorf("entrance held by unknown ship %s", holder))
		case s.State != StateEntering && s.State != StateExiting:
			errs = append(errs, fmt.Errorf("entrance held by %s in state %s", holder, s.State))
		}
	}
	waiting := make(map[string]bool)
	for _, id := range sim.Port.Entrance.Waiters() {
		if waiting[id] {
			errs = append(errs, fmt.Errorf("ship %s waits for the entrance twice", id))
		}
		waiting[id] = true
		if id == sim.Port.EntranceHolder() {
			errs = append(errs, fmt.Errorf("ship %s both holds and waits for the entrance", id))
		}
		if s := sim.Ships[id]; s == nil || (s.State != StateEntering && s.State != StateLeaving) {
			errs = append(errs, fmt.Errorf("entrance waiter %s is not a live entering or leaving ship", id))
		}
	}

	holders := make(map[int]string)
	for _, p := range sim.Port.Piers.Items() {
		if !p.Occupied {
			if p.OccupiedBy != "" {
				errs = append(errs, fmt.Errorf("free pier %d records holder %s", p.Index, p.OccupiedBy))
			}
			continue
		}
		s := sim.Ships[p.OccupiedBy]
		if s == nil {
			errs = append(errs, fmt.Errorf("pier %d held by unknown ship %q", p.Index, p.OccupiedBy))
			continue
		}
		if s.AssignedPier != p.Index {
			errs = append(errs, fmt.Errorf("pier %d held by %s, which is assigned pier %d", p.Index, s.ID, s.AssignedPier))
		}
		holders[p.Index] = s.ID
	}

	for _, s := range sim.Ships {
		pol := policyFor(s.Type)
		atPier := s.State == StateEntering || s.State == StateToPier || s.State == StateServicing
		if atPier != s.HasPier() {
			errs = append(errs, fmt.Errorf("%s in state %s has pier %d", s.ID, s.State, s.AssignedPier))
		}
		if s.HasPier() {
			if holders[s.AssignedPier] != s.ID {
				errs = append(errs, fmt.Errorf("%s assigned pier %d without holding its reservation", s.ID, s.AssignedPier))
			}
			if p := sim.Port.Piers.Get(s.AssignedPier); p != nil && p.Content != pol.RequiredContent {
				errs = append(errs, fmt.Errorf("%s (%s) holds pier %d with content %s", s.ID, s.Type, p.Index, p.Content))
			}
		}
		serviced := s.State == StateLeaving || s.State == StateExiting
		wantCargo := pol.InitialCargo
		if serviced {
			wantCargo = pol.CargoAfterService
		}
		if s.Cargo != wantCargo {
			errs = append(errs, fmt.Errorf("%s in state %s has cargo=%v", s.ID, s.State, s.Cargo))
		}
		if s.State == StateQueued && !sim.Queues.Queue(s.Type).Contains(s.ID) {
			errs = append(errs, fmt.Errorf("%s is queued but missing from the %s queue", s.ID, s.Type))
		}
	}

	seen := make(map[string]bool)
	for _, t := range ShipTypes {
		q := sim.Queues.Queue(t)
		if err := q.checkUnique(); err != nil {
			errs = append(errs, err)
		}
		for _, s := range q.Items() {
			if seen[s.ID] {
				errs = append(errs, fmt.Errorf("ship %s appears in more than one queue", s.ID))
			}
			seen[s.ID] = true
			if s.Type != t {
				errs = append(errs, fmt.Errorf("%s ship %s in the %s queue", s.Type, s.ID, t))
			}
			if sim.isLive(s.ID) && s.State != StateQueued {
				errs = append(errs, fmt.Errorf("%s in the %s queue has state %s", s.ID, t, s.State))
			}
		}
	}

	if len(sim.Ships) > sim.Config.Spawn.MaxShips {
		errs = append(errs, fmt.Errorf("%d live ships exceed the cap of %d", len(sim.Ships), sim.Config.Spawn.MaxShips))
	}
	return errors.Join(errs...)
}
