package sim

import (
	"fmt"

	"github.com/portsim/portsim/sim/trace"
)

// spawn handles one spawn attempt at tick now and re-arms the spawn timer.
func (sim *Simulator) spawn(now int64) {
	sim.spawnArmed = false
	if !sim.Spawner.Active(now) {
		return
	}
	next := now + sim.Spawner.Interval()
	if sim.Spawner.Active(next) {
		sim.armSpawn(next)
	}

	if !sim.Spawner.Allow(len(sim.Ships)) {
		sim.Metrics.DroppedSpawns++
		sim.logger.Warnf("[tick %07d] spawn dropped: %d live ships at cap", now, len(sim.Ships))
		sim.checkStall()
		return
	}

	sim.createShip(sim.Spawner.NextType(), now)
}

func (sim *Simulator) armSpawn(at int64) {
	sim.Schedule(&SpawnEvent{time: at})
	sim.spawnArmed = true
}

// InjectShip creates a ship of type t at the current tick, bypassing the
// spawn timer but not the live-ship cap. Returns nil when the cap is reached.
// An injected ship may unblock a stalled port, so the stall is re-evaluated.
func (sim *Simulator) InjectShip(t ShipType) *Ship {
	if !sim.Spawner.Allow(len(sim.Ships)) {
		sim.Metrics.DroppedSpawns++
		return nil
	}
	sim.Metrics.clearStall()
	return sim.createShip(t, sim.Clock)
}

func (sim *Simulator) createShip(t ShipType, now int64) *Ship {
	sim.nextShipSeq++
	s := newShip(sim.nextShipSeq, t, now)
	spawnAt := sim.Config.Layout.SpawnPoint(sim.layoutRNG.Float64())
	s.Motion = Motion{From: spawnAt, To: spawnAt, Start: now, End: now}
	sim.Ships[s.ID] = s
	sim.Metrics.recordSpawn(len(sim.Ships))
	sim.log.Log(fmt.Sprintf("New ship %s %s arriving", s.ID, s.Label()))

	s.State = StateApproaching
	sim.move(s, sim.Config.Layout.ArrivalPoint(s.Type), sim.Config.Timing.ApproachMs)
	sim.Schedule(&ArrivalEvent{time: now + sim.Config.Timing.ApproachMs, Ship: s})
	return s
}

// handleArrival admits a ship that finished its approach, or queues it.
// Availability check and reservation happen in this one step.
func (sim *Simulator) handleArrival(s *Ship) {
	if s.State != StateApproaching {
		panic(fmt.Sprintf("handleArrival: %s in state %s", s.ID, s.State))
	}
	var reason string
	switch {
	case sim.Queues.Queue(s.Type).Len() > 0:
		reason = trace.ReasonQueueNotEmpty
	case sim.Port.EntranceBusy():
		reason = trace.ReasonEntranceBusy
	case !sim.Port.CanServe(s.Type):
		reason = trace.ReasonNoPier
	}
	if reason != "" {
		sim.enqueue(s, reason)
		return
	}

	pier, _ := sim.Port.FindPierFor(s.Type)
	if !sim.Port.ReservePier(pier, s.ID, sim.Clock) {
		panic(fmt.Sprintf("handleArrival: pier %d reported free but reservation failed for %s", pier, s.ID))
	}
	sim.admit(s, pier, trace.SourceArrival)
}

// enqueue moves a ship into its type's queue.
func (sim *Simulator) enqueue(s *Ship, reason string) {
	if sim.Queues.Contains(s.ID) {
		return
	}
	s.State = StateQueued
	s.QueuedAt = sim.Clock
	sim.Queues.Enqueue(s)
	sim.Metrics.recordQueued(s.Type, sim.Queues.Queue(s.Type).Len())
	if sim.Trace.Enabled() {
		sim.Trace.RecordAdmission(trace.AdmissionRecord{
			ShipID:   s.ID,
			ShipType: s.Type.String(),
			Clock:    sim.Clock,
			Source:   trace.SourceArrival,
			Admitted: false,
			Pier:     NoPier,
			Reason:   reason,
		})
	}
	sim.log.Log(fmt.Sprintf("%s %s waiting in queue (%s)", s.ID, s.Label(), reason))
	sim.relayoutQueues()
	sim.requestPass()
}

// schedulingPass admits at most one queued ship.
func (sim *Simulator) schedulingPass(now int64) {
	adm, ok := sim.Queues.Pass(sim.Port, now, sim.isLive)
	if !ok {
		sim.checkStall()
		return
	}
	sim.relayoutQueues()
	sim.admit(adm.Ship, adm.Pier, trace.SourceQueue)
}

// admit starts the admission sequence for a ship whose pier is already reserved.
func (sim *Simulator) admit(s *Ship, pier int, source string) {
	p := sim.Port.Piers.Get(pier)
	if p == nil || !p.Occupied || p.OccupiedBy != s.ID {
		panic(fmt.Sprintf("admit: %s has no reservation on pier %d", s.ID, pier))
	}
	switch s.State {
	case StateQueued:
		s.QueueWait += sim.Clock - s.QueuedAt
		sim.Metrics.recordQueueWait(s.ID, sim.Clock-s.QueuedAt)
	case StateApproaching:
	default:
		panic(fmt.Sprintf("admit: %s in state %s", s.ID, s.State))
	}

	s.AssignedPier = pier
	s.AdmittedAt = sim.Clock
	s.State = StateEntering
	sim.Metrics.recordAdmission(source)
	if sim.Trace.Enabled() {
		sim.Trace.RecordAdmission(trace.AdmissionRecord{
			ShipID:   s.ID,
			ShipType: s.Type.String(),
			Clock:    sim.Clock,
			Source:   source,
			Admitted: true,
			Pier:     pier,
		})
	}
	sim.log.Log(fmt.Sprintf("%s %s heading to pier %d", s.ID, s.Label(), pier+1))

	sim.move(s, sim.Config.Layout.EntranceOutside(), sim.Config.Timing.ToEntranceMs)
	sim.Schedule(&EntranceReachedEvent{time: sim.Clock + sim.Config.Timing.ToEntranceMs, Ship: s})
	sim.requestPass()
}

// requestEntrance asks for the channel on the way in (StateEntering) or out (StateLeaving).
func (sim *Simulator) requestEntrance(s *Ship) {
	if s.State != StateEntering && s.State != StateLeaving {
		panic(fmt.Sprintf("requestEntrance: %s in state %s", s.ID, s.State))
	}
	s.EntranceAskAt = sim.Clock
	if sim.Port.RequestEntrance(s.ID) {
		sim.beginTransit(s)
		return
	}
	sim.logger.Debugf("[tick %07d] %s waiting for entrance held by %s", sim.Clock, s.ID, sim.Port.EntranceHolder())
}

// beginTransit starts the channel crossing of the ship that now holds the entrance.
func (sim *Simulator) beginTransit(s *Ship) {
	if sim.Port.EntranceHolder() != s.ID {
		panic(fmt.Sprintf("beginTransit: %s does not hold the entrance", s.ID))
	}
	waited := sim.Clock - s.EntranceAskAt
	s.EntranceWait += waited
	sim.Metrics.recordEntranceGrant(waited)

	direction := trace.DirectionIn
	switch s.State {
	case StateEntering:
		sim.move(s, sim.Config.Layout.EntranceInside(), sim.Config.Timing.EnterMs)
		sim.Schedule(&TransitInDoneEvent{time: sim.Clock + sim.Config.Timing.EnterMs, Ship: s})
	case StateLeaving:
		direction = trace.DirectionOut
		s.State = StateExiting
		sim.move(s, sim.Config.Layout.ExitPoint(), sim.Config.Timing.ExitMs)
		sim.Schedule(&TransitOutDoneEvent{time: sim.Clock + sim.Config.Timing.ExitMs, Ship: s})
	default:
		panic(fmt.Sprintf("beginTransit: %s in state %s", s.ID, s.State))
	}
	if sim.Trace.Enabled() {
		sim.Trace.RecordEntrance(trace.EntranceRecord{
			ShipID:    s.ID,
			Clock:     sim.Clock,
			Direction: direction,
			Waited:    waited,
		})
	}
}

// releaseEntrance frees the channel, hands it to the next waiter and lets
// the queues be re-evaluated.
func (sim *Simulator) releaseEntrance(s *Ship) {
	next, ok := sim.Port.ReleaseEntrance(s.ID)
	if ok {
		waiter := sim.Ships[next]
		if waiter == nil {
			panic(fmt.Sprintf("releaseEntrance: entrance handed to unknown ship %s", next))
		}
		sim.beginTransit(waiter)
	}
	sim.requestPass()
}

// finishTransitIn releases the entrance as soon as the ship is clear of the
// channel, before it docks, so the next ship may use it.
func (sim *Simulator) finishTransitIn(s *Ship) {
	sim.releaseEntrance(s)
	s.State = StateToPier
	sim.move(s, sim.Config.Layout.DockPoint(s.AssignedPier), sim.Config.Timing.DockMs)
	sim.Schedule(&DockedEvent{time: sim.Clock + sim.Config.Timing.DockMs, Ship: s})
}

func (sim *Simulator) startService(s *Ship) {
	s.State = StateServicing
	sim.log.Log(fmt.Sprintf("%s %s docked at pier %d", s.ID, s.Label(), s.AssignedPier+1))
	sim.Schedule(&ServiceDoneEvent{time: sim.Clock + sim.Config.Timing.ServiceMs, Ship: s})
}

// finishService swaps cargo between ship and pier, then releases the pier
// before the ship starts leaving so the next pass sees it free.
func (sim *Simulator) finishService(s *Ship) {
	pol := policyFor(s.Type)
	pier := s.AssignedPier
	s.Cargo = pol.CargoAfterService
	sim.Port.Piers.SetContent(pier, pol.ContentAfter)
	sim.Port.ReleasePier(pier, sim.Clock)
	s.AssignedPier = NoPier
	s.State = StateLeaving
	sim.Metrics.recordService(pier)
	sim.log.Log(fmt.Sprintf("%s %s finished at pier %d, pier is now %s", s.ID, s.Label(), pier+1, pol.ContentAfter))

	sim.move(s, sim.Config.Layout.EntranceInside(), sim.Config.Timing.LeaveMs)
	sim.Schedule(&ExitReachedEvent{time: sim.Clock + sim.Config.Timing.LeaveMs, Ship: s})
	sim.requestPass()
}

// finishTransitOut releases the entrance once the outbound ship is clear of the channel.
func (sim *Simulator) finishTransitOut(s *Ship) {
	sim.releaseEntrance(s)
	sim.move(s, sim.Config.Layout.DeparturePoint(), sim.Config.Timing.DepartMs)
	sim.Schedule(&DepartedEvent{time: sim.Clock + sim.Config.Timing.DepartMs, Ship: s})
}

// dispose removes a departed ship from every live collection.
func (sim *Simulator) dispose(s *Ship) {
	s.State = StateDone
	s.DoneAt = sim.Clock
	sim.Queues.Remove(s.ID)
	delete(sim.Ships, s.ID)
	sim.Metrics.recordCompletion(s)
	sim.log.Log(fmt.Sprintf("%s %s left the port", s.ID, s.Label()))
	sim.checkStall()
}

// checkStall records the first tick at which the port can no longer make
// progress: every live ship is queued, no pier matches any queued type and
// no new ship can spawn to flip a pier's content.
func (sim *Simulator) checkStall() {
	if sim.Metrics.Stalled || len(sim.Ships) == 0 {
		return
	}
	if sim.spawnArmed && !sim.Spawner.Stopped() && sim.Spawner.Allow(len(sim.Ships)) {
		return
	}
	if sim.Queues.Len() != len(sim.Ships) {
		return
	}
	for _, t := range ShipTypes {
		if sim.Queues.Queue(t).Len() > 0 && sim.Port.CanServe(t) {
			return
		}
	}
	sim.Metrics.recordStall(sim.Clock, len(sim.Ships))
	sim.logger.Warnf("[tick %07d] port stalled: %d ships queued with no matching pier", sim.Clock, len(sim.Ships))
	sim.log.Log(fmt.Sprintf("Port stalled: %d ships waiting for a pier nobody can prepare", len(sim.Ships)))
}

// relayoutQueues retargets every queued ship to its slot. Slots are a pure
// function of queue index, so only ships whose index changed move.
func (sim *Simulator) relayoutQueues() {
	for _, t := range ShipTypes {
		for idx, s := range sim.Queues.Queue(t).Items() {
			target := sim.Config.Layout.QueueSlot(t, idx)
			if s.Motion.To != target {
				sim.move(s, target, sim.Config.Timing.QueueShiftMs)
			}
		}
	}
}
