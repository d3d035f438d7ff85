package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allLive(string) bool { return true }

func queuedShip(seq int, t ShipType) *Ship {
	s := newShip(seq, t, 0)
	s.State = StateQueued
	return s
}

func TestQueueScheduler_Pass_EntranceBusy_IsNoop(t *testing.T) {
	// GIVEN a queued unload ship, a free empty pier and a held entrance
	port := NewPort([]PierContent{PierEmpty})
	qs := NewQueueScheduler()
	qs.Enqueue(queuedShip(1, ShipTypeUnload))
	port.RequestEntrance("other")

	// WHEN a pass runs
	_, ok := qs.Pass(port, 100, allLive)

	// THEN nothing is admitted or reserved
	assert.False(t, ok)
	assert.Equal(t, 1, qs.Len())
	assert.False(t, port.Piers.Get(0).Occupied)
}

func TestQueueScheduler_Pass_ReservesPierForHead(t *testing.T) {
	// GIVEN two queued unload ships and two empty piers
	port := NewPort([]PierContent{PierEmpty, PierEmpty})
	qs := NewQueueScheduler()
	first := queuedShip(1, ShipTypeUnload)
	qs.Enqueue(first)
	qs.Enqueue(queuedShip(2, ShipTypeUnload))

	// WHEN a pass runs
	adm, ok := qs.Pass(port, 100, allLive)

	// THEN exactly the head is admitted with its pier reserved
	require.True(t, ok)
	assert.Same(t, first, adm.Ship)
	assert.Equal(t, 0, adm.Pier)
	assert.Equal(t, first.ID, port.Piers.Get(0).OccupiedBy)
	assert.False(t, port.Piers.Get(1).Occupied, "one admission per pass")
	assert.Equal(t, 1, qs.Len())
}

func TestQueueScheduler_Pass_LoadQueueScannedFirst(t *testing.T) {
	// GIVEN one ship of each type and a matching pier for each
	port := NewPort([]PierContent{PierEmpty, PierFilled})
	qs := NewQueueScheduler()
	qs.Enqueue(queuedShip(1, ShipTypeUnload))
	loader := queuedShip(2, ShipTypeLoad)
	qs.Enqueue(loader)

	// WHEN a pass runs
	adm, ok := qs.Pass(port, 0, allLive)

	// THEN the load ship wins
	require.True(t, ok)
	assert.Same(t, loader, adm.Ship)
	assert.Equal(t, 1, adm.Pier)
}

func TestQueueScheduler_Pass_FallsThroughToOtherType(t *testing.T) {
	// GIVEN a load ship with no filled pier and an unload ship with an empty pier
	port := NewPort([]PierContent{PierEmpty})
	qs := NewQueueScheduler()
	loader := queuedShip(1, ShipTypeLoad)
	unloader := queuedShip(2, ShipTypeUnload)
	qs.Enqueue(loader)
	qs.Enqueue(unloader)

	// WHEN a pass runs
	adm, ok := qs.Pass(port, 0, allLive)

	// THEN the unload ship is admitted and the load ship keeps its place
	require.True(t, ok)
	assert.Same(t, unloader, adm.Ship)
	assert.Same(t, loader, qs.Queue(ShipTypeLoad).Peek())
}

func TestQueueScheduler_Pass_NoMatchingPier(t *testing.T) {
	port := NewPort([]PierContent{PierFilled})
	qs := NewQueueScheduler()
	qs.Enqueue(queuedShip(1, ShipTypeUnload))

	_, ok := qs.Pass(port, 0, allLive)

	assert.False(t, ok)
	assert.Equal(t, 1, qs.Queue(ShipTypeUnload).Len())
}

func TestQueueScheduler_Pass_DiscardsStaleEntries(t *testing.T) {
	// GIVEN a queue whose head is no longer live
	port := NewPort([]PierContent{PierEmpty})
	qs := NewQueueScheduler()
	stale := queuedShip(1, ShipTypeUnload)
	live := queuedShip(2, ShipTypeUnload)
	qs.Enqueue(stale)
	qs.Enqueue(live)

	// WHEN a pass runs
	adm, ok := qs.Pass(port, 0, func(id string) bool { return id != stale.ID })

	// THEN the stale ship is dropped and the next one admitted
	require.True(t, ok)
	assert.Same(t, live, adm.Ship)
	assert.False(t, qs.Contains(stale.ID))
}

func TestQueueScheduler_RemoveAndContains(t *testing.T) {
	qs := NewQueueScheduler()
	s := queuedShip(1, ShipTypeLoad)
	qs.Enqueue(s)
	assert.True(t, qs.Contains(s.ID))
	assert.False(t, qs.Enqueue(s))

	qs.Remove(s.ID)

	assert.False(t, qs.Contains(s.ID))
	assert.Equal(t, 0, qs.Len())
}
