// Implements the ShipQueue, which holds ships of one type waiting for a pier.
// Ships are enqueued on arrival when they cannot be admitted straight away.

package sim

import (
	"fmt"
	"strings"
)

// ShipQueue is a FIFO of ships waiting for admission. Membership is unique:
// enqueueing a ship that is already present is a no-op.
type ShipQueue struct {
	queue []*Ship
}

// Enqueue adds a ship to the back of the queue.
// Returns false if the ship is already queued.
func (q *ShipQueue) Enqueue(s *Ship) bool {
	if s == nil {
		panic("Enqueue: ship must not be nil")
	}
	if q.Index(s.ID) >= 0 {
		return false
	}
	q.queue = append(q.queue, s)
	return true
}

func (q *ShipQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, s := range q.queue {
		sb.WriteString(s.ID)
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of ships in the queue.
func (q *ShipQueue) Len() int {
	return len(q.queue)
}

// Peek returns the ship at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *ShipQueue) Peek() *Ship {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Index returns the queue position of the ship with the given ID, or -1.
func (q *ShipQueue) Index(id string) int {
	for i, s := range q.queue {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether the ship with the given ID is queued.
func (q *ShipQueue) Contains(id string) bool {
	return q.Index(id) >= 0
}

// PrependFront inserts a ship at the front of the queue.
// Used when an admission selected from the head cannot complete: the ship
// keeps its place instead of being dropped.
func (q *ShipQueue) PrependFront(s *Ship) {
	if s == nil {
		panic("PrependFront: ship must not be nil")
	}
	if i := q.Index(s.ID); i >= 0 {
		q.queue = append(q.queue[:i], q.queue[i+1:]...)
	}
	q.queue = append([]*Ship{s}, q.queue...)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers MUST NOT
// append to or reslice it.
func (q *ShipQueue) Items() []*Ship {
	return q.queue
}

// IDs returns a copy of the queued ship IDs in order.
func (q *ShipQueue) IDs() []string {
	ids := make([]string, len(q.queue))
	for i, s := range q.queue {
		ids[i] = s.ID
	}
	return ids
}

// Dequeue removes the ship at the front of the queue.
func (q *ShipQueue) Dequeue() *Ship {
	if len(q.queue) == 0 {
		return nil
	}
	s := q.queue[0]
	q.queue = q.queue[1:]
	return s
}

// Remove deletes the ship with the given ID. Returns false if it was not queued.
func (q *ShipQueue) Remove(id string) bool {
	i := q.Index(id)
	if i < 0 {
		return false
	}
	q.queue = append(q.queue[:i:i], q.queue[i+1:]...)
	return true
}

// checkUnique reports a ship that appears twice. Enqueue keeps queues
// duplicate-free, so an error here is a logic defect.
func (q *ShipQueue) checkUnique() error {
	seen := make(map[string]bool, len(q.queue))
	for _, s := range q.queue {
		if seen[s.ID] {
			return fmt.Errorf("ship %s queued twice", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
