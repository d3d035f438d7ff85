package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShipQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue with ships [A, B]
	q := &ShipQueue{}
	a := &Ship{ID: "A"}
	b := &Ship{ID: "B"}
	q.Enqueue(a)
	q.Enqueue(b)

	// WHEN Peek() is called
	got := q.Peek()

	// THEN it returns the front element without removing it
	if got != a {
		t.Errorf("Peek: got ship %v, want %v", got.ID, a.ID)
	}
	if q.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", q.Len())
	}
}

func TestShipQueue_Peek_Empty_ReturnsNil(t *testing.T) {
	// GIVEN an empty queue
	q := &ShipQueue{}

	// WHEN Peek() and Dequeue() are called
	// THEN both return nil
	if got := q.Peek(); got != nil {
		t.Errorf("Peek on empty queue: got %v, want nil", got.ID)
	}
	if got := q.Dequeue(); got != nil {
		t.Errorf("Dequeue on empty queue: got %v, want nil", got.ID)
	}
}

func TestShipQueue_Enqueue_Duplicate_IsNoop(t *testing.T) {
	// GIVEN a queue holding A
	q := &ShipQueue{}
	a := &Ship{ID: "A"}
	assert.True(t, q.Enqueue(a))

	// WHEN A is enqueued again
	added := q.Enqueue(a)

	// THEN membership stays unique
	assert.False(t, added)
	assert.Equal(t, 1, q.Len())
	assert.NoError(t, q.checkUnique())
}

func TestShipQueue_Enqueue_Nil_Panics(t *testing.T) {
	q := &ShipQueue{}
	assert.Panics(t, func() { q.Enqueue(nil) })
}

func TestShipQueue_FIFO_Order(t *testing.T) {
	// GIVEN ships enqueued A, B, C
	q := &ShipQueue{}
	for _, id := range []string{"A", "B", "C"} {
		q.Enqueue(&Ship{ID: id})
	}

	// WHEN dequeued
	var got []string
	for q.Len() > 0 {
		got = append(got, q.Dequeue().ID)
	}

	// THEN they come out in arrival order
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestShipQueue_PrependFront_KeepsPlace(t *testing.T) {
	// GIVEN [A, B] with A dequeued
	q := &ShipQueue{}
	a := &Ship{ID: "A"}
	q.Enqueue(a)
	q.Enqueue(&Ship{ID: "B"})
	q.Dequeue()

	// WHEN A is put back
	q.PrependFront(a)

	// THEN it is at the head again
	assert.Equal(t, []string{"A", "B"}, q.IDs())
	assert.Equal(t, "[A B]", q.String())
}

func TestShipQueue_PrependFront_AlreadyQueued_MovesToFront(t *testing.T) {
	// GIVEN [A, B, C]
	q := &ShipQueue{}
	c := &Ship{ID: "C"}
	q.Enqueue(&Ship{ID: "A"})
	q.Enqueue(&Ship{ID: "B"})
	q.Enqueue(c)

	// WHEN C is prepended
	q.PrependFront(c)

	// THEN it appears once, at the front
	assert.Equal(t, []string{"C", "A", "B"}, q.IDs())
	assert.NoError(t, q.checkUnique())
}

func TestShipQueue_Remove(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		wantOK bool
		want   []string
	}{
		{name: "head", remove: "A", wantOK: true, want: []string{"B", "C"}},
		{name: "middle", remove: "B", wantOK: true, want: []string{"A", "C"}},
		{name: "tail", remove: "C", wantOK: true, want: []string{"A", "B"}},
		{name: "absent", remove: "Z", wantOK: false, want: []string{"A", "B", "C"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := &ShipQueue{}
			for _, id := range []string{"A", "B", "C"} {
				q.Enqueue(&Ship{ID: id})
			}
			assert.Equal(t, tc.wantOK, q.Remove(tc.remove))
			assert.Equal(t, tc.want, q.IDs())
			assert.False(t, q.Contains(tc.remove))
		})
	}
}

func TestShipQueue_CheckUnique_DetectsDuplicate(t *testing.T) {
	a := &Ship{ID: "A"}
	q := &ShipQueue{queue: []*Ship{a, a}}
	assert.Error(t, q.checkUnique())
}
