package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPierRegistry_FindAvailableFor_LowestMatchingFreePier(t *testing.T) {
	// GIVEN piers [filled, empty, empty, filled] with pier 1 occupied
	r := NewPierRegistry([]PierContent{PierFilled, PierEmpty, PierEmpty, PierFilled})
	require.True(t, r.Reserve(1, "ship-1", 0))

	// WHEN looking for piers
	unloadPier, okU := r.FindAvailableFor(ShipTypeUnload)
	loadPier, okL := r.FindAvailableFor(ShipTypeLoad)

	// THEN the ascending scan picks the first free match per type
	assert.True(t, okU)
	assert.Equal(t, 2, unloadPier)
	assert.True(t, okL)
	assert.Equal(t, 0, loadPier)
}

func TestPierRegistry_FindAvailableFor_NoneFree(t *testing.T) {
	r := NewPierRegistry([]PierContent{PierFilled, PierFilled})
	i, ok := r.FindAvailableFor(ShipTypeUnload)
	assert.False(t, ok)
	assert.Equal(t, NoPier, i)
}

func TestPierRegistry_Reserve_RejectsOccupiedAndInvalid(t *testing.T) {
	// GIVEN one reserved pier
	r := NewPierRegistry([]PierContent{PierEmpty})
	require.True(t, r.Reserve(0, "ship-1", 10))

	// WHEN another ship tries the same pier, or an invalid index
	// THEN the reservation is refused without side effects
	assert.False(t, r.Reserve(0, "ship-2", 20))
	assert.Equal(t, "ship-1", r.Get(0).OccupiedBy)
	assert.False(t, r.Reserve(-1, "ship-2", 20))
	assert.False(t, r.Reserve(5, "ship-2", 20))
}

func TestPierRegistry_Release_AccumulatesBusyTicks(t *testing.T) {
	// GIVEN a pier reserved at tick 100
	r := NewPierRegistry([]PierContent{PierEmpty})
	r.Reserve(0, "ship-1", 100)

	// WHEN released at 600, then released again
	r.Release(0, 600)
	r.Release(0, 900)

	// THEN only the first release counts
	p := r.Get(0)
	assert.False(t, p.Occupied)
	assert.Empty(t, p.OccupiedBy)
	assert.Equal(t, int64(500), p.BusyTicks)
	assert.Equal(t, 1, p.Visits)
}

func TestPierRegistry_InvalidIndex_IsNoop(t *testing.T) {
	r := NewPierRegistry([]PierContent{PierEmpty})
	assert.NotPanics(t, func() {
		r.Release(3, 0)
		r.SetContent(-1, PierFilled)
	})
	assert.Nil(t, r.Get(3))
	assert.Equal(t, 1, r.CountByContent(PierEmpty))
}

func TestNewPierRegistry_DefaultsToEmpty(t *testing.T) {
	r := NewPierRegistry(make([]PierContent, 3))
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 3, r.CountByContent(PierEmpty))
}

func TestPort_CanServe_IsSideEffectFree(t *testing.T) {
	p := NewPort([]PierContent{PierEmpty})
	assert.True(t, p.CanServe(ShipTypeUnload))
	assert.False(t, p.CanServe(ShipTypeLoad))
	assert.False(t, p.Piers.Get(0).Occupied)
}

func TestPort_Entrance_GrantsInRequestOrder(t *testing.T) {
	// GIVEN A holds the entrance
	p := NewPort([]PierContent{PierEmpty})
	require.True(t, p.RequestEntrance("A"))
	assert.True(t, p.EntranceBusy())

	// WHEN B and C ask, B twice
	assert.False(t, p.RequestEntrance("B"))
	assert.False(t, p.RequestEntrance("C"))
	assert.False(t, p.RequestEntrance("B"))

	// THEN they wait once each, in order
	assert.Equal(t, []string{"B", "C"}, p.Entrance.Waiters())

	// WHEN A releases
	next, ok := p.ReleaseEntrance("A")

	// THEN B is handed the entrance in the same step
	assert.True(t, ok)
	assert.Equal(t, "B", next)
	assert.Equal(t, "B", p.EntranceHolder())
	assert.Equal(t, []string{"C"}, p.Entrance.Waiters())

	next, ok = p.ReleaseEntrance("B")
	assert.True(t, ok)
	assert.Equal(t, "C", next)

	_, ok = p.ReleaseEntrance("C")
	assert.False(t, ok)
	assert.False(t, p.EntranceBusy())
}

func TestPort_Entrance_MisuseIsAnInvariantViolation(t *testing.T) {
	p := NewPort([]PierContent{PierEmpty})
	p.RequestEntrance("A")

	assert.Panics(t, func() { p.RequestEntrance("A") }, "re-request by holder")
	assert.Panics(t, func() { p.ReleaseEntrance("B") }, "release by non-holder")
}
