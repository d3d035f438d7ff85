package sim

import "container/heap"

// eventEntry wraps an Event with a sequence ID for deterministic FIFO
// tie-breaking when timestamp and priority are equal.
type eventEntry struct {
	event Event
	seqID int64
}

// EventQueue is a min-heap ordered by (Timestamp, Priority, seqID).
// Implements heap.Interface.
type EventQueue []eventEntry

func (q EventQueue) Len() int { return len(q) }

func (q EventQueue) Less(i, j int) bool {
	if q[i].event.Timestamp() != q[j].event.Timestamp() {
		return q[i].event.Timestamp() < q[j].event.Timestamp()
	}
	if q[i].event.Priority() != q[j].event.Priority() {
		return q[i].event.Priority() < q[j].event.Priority()
	}
	return q[i].seqID < q[j].seqID
}

func (q EventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *EventQueue) Push(x any) {
	*q = append(*q, x.(eventEntry))
}

func (q *EventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// push adds ev with the given sequence ID.
func (q *EventQueue) push(ev Event, seqID int64) {
	heap.Push(q, eventEntry{event: ev, seqID: seqID})
}

// popNext removes and returns the next event, or nil if the queue is empty.
func (q *EventQueue) popNext() Event {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(eventEntry).event
}

// peek returns the next event without removing it, or nil.
func (q EventQueue) peek() Event {
	if len(q) == 0 {
		return nil
	}
	return q[0].event
}
