package sim

// Admission is the outcome of a successful scheduling pass: a ship taken from
// its queue together with the pier reserved for it in the same step.
type Admission struct {
	Ship *Ship
	Pier int
}

// QueueScheduler holds one FIFO per ship type and arbitrates which queued
// ship is admitted next.
//
// Policy:
//   - a pass is a no-op while the entrance is held;
//   - queues are scanned in ShipTypes order (load before unload);
//   - the first live ship with a matching free pier is admitted and its pier
//     reserved before the pass returns;
//   - at most one ship is admitted per pass.
type QueueScheduler struct {
	queues map[ShipType]*ShipQueue
	order  []ShipType
}

// NewQueueScheduler creates empty queues for every ship type.
func NewQueueScheduler() *QueueScheduler {
	qs := &QueueScheduler{
		queues: make(map[ShipType]*ShipQueue, len(ShipTypes)),
		order:  ShipTypes,
	}
	for _, t := range ShipTypes {
		qs.queues[t] = &ShipQueue{}
	}
	return qs
}

// Queue returns the queue for ship type t.
func (qs *QueueScheduler) Queue(t ShipType) *ShipQueue {
	return qs.queues[t]
}

// Enqueue appends s to its type's queue. Idempotent.
func (qs *QueueScheduler) Enqueue(s *Ship) bool {
	return qs.queues[s.Type].Enqueue(s)
}

// Remove deletes the ship from every queue.
func (qs *QueueScheduler) Remove(id string) {
	for _, t := range qs.order {
		qs.queues[t].Remove(id)
	}
}

// Contains reports whether the ship is in any queue.
func (qs *QueueScheduler) Contains(id string) bool {
	for _, t := range qs.order {
		if qs.queues[t].Contains(id) {
			return true
		}
	}
	return false
}

// Len returns the total number of queued ships.
func (qs *QueueScheduler) Len() int {
	n := 0
	for _, q := range qs.queues {
		n += q.Len()
	}
	return n
}

// Pass runs one scheduling pass against port at tick now. isLive reports
// whether a queued ship is still part of the simulation; stale entries are
// discarded. Returns the admitted ship, if any.
func (qs *QueueScheduler) Pass(port *Port, now int64, isLive func(id string) bool) (Admission, bool) {
	if port.EntranceBusy() {
		return Admission{}, false
	}
	for _, t := range qs.order {
		if adm, ok := qs.admitFrom(qs.queues[t], t, port, now, isLive); ok {
			return adm, true
		}
	}
	return Admission{}, false
}

func (qs *QueueScheduler) admitFrom(q *ShipQueue, t ShipType, port *Port, now int64, isLive func(string) bool) (Admission, bool) {
	for q.Len() > 0 {
		head := q.Peek()
		if !isLive(head.ID) {
			q.Dequeue()
			continue
		}
		pier, ok := port.FindPierFor(t)
		if !ok {
			// All ships in q share type t, so nothing behind the head can match either.
			return Admission{}, false
		}
		q.Dequeue()
		if !port.ReservePier(pier, head.ID, now) {
			// Keep the ship's place; the next pass re-evaluates it.
			q.PrependFront(head)
			return Admission{}, false
		}
		return Admission{Ship: head, Pier: pier}, true
	}
	return Admission{}, false
}
