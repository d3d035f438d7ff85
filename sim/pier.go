// Implements the PierRegistry, the fixed-size collection of piers a port
// allocates to ships.

package sim

// PierContent is the cargo state of a pier.
type PierContent string

const (
	PierEmpty  PierContent = "empty"
	PierFilled PierContent = "filled"
)

// Pier is a single dock. Occupied is independent of Content: a pier is
// reserved by at most one ship, and its content only changes while reserved.
type Pier struct {
	Index      int
	Occupied   bool
	Content    PierContent
	OccupiedBy string // ID of the ship holding the reservation ("" when free)

	BusyTicks  int64 // Total ticks spent occupied
	reservedAt int64
	Visits     int // Completed reservations
}

// PierRegistry owns the piers of a port. Lookups by an invalid index are no-ops.
type PierRegistry struct {
	piers []*Pier
}

// NewPierRegistry creates a registry of len(contents) piers with the given initial contents.
func NewPierRegistry(contents []PierContent) *PierRegistry {
	r := &PierRegistry{piers: make([]*Pier, len(contents))}
	for i, c := range contents {
		if c == "" {
			c = PierEmpty
		}
		r.piers[i] = &Pier{Index: i, Content: c}
	}
	return r
}

// Len returns the number of piers.
func (r *PierRegistry) Len() int {
	return len(r.piers)
}

// Get returns the pier at index i, or nil if i is out of range.
func (r *PierRegistry) Get(i int) *Pier {
	if i < 0 || i >= len(r.piers) {
		return nil
	}
	return r.piers[i]
}

// Items returns the piers in index order.
// Callers MUST NOT mutate the returned slice.
func (r *PierRegistry) Items() []*Pier {
	return r.piers
}

// FindAvailableFor returns the lowest-index free pier a ship of type t may reserve.
// The ascending scan is the tie-break policy and keeps runs deterministic.
func (r *PierRegistry) FindAvailableFor(t ShipType) (int, bool) {
	want := RequiredContent(t)
	for _, p := range r.piers {
		if !p.Occupied && p.Content == want {
			return p.Index, true
		}
	}
	return NoPier, false
}

// Reserve marks pier i as held by shipID at tick now.
// Returns false without side effects if i is invalid or the pier is already occupied.
func (r *PierRegistry) Reserve(i int, shipID string, now int64) bool {
	p := r.Get(i)
	if p == nil || p.Occupied {
		return false
	}
	p.Occupied = true
	p.OccupiedBy = shipID
	p.reservedAt = now
	return true
}

// Release frees pier i at tick now. No-op for invalid indices or free piers.
func (r *PierRegistry) Release(i int, now int64) {
	p := r.Get(i)
	if p == nil || !p.Occupied {
		return
	}
	p.BusyTicks += now - p.reservedAt
	p.Visits++
	p.Occupied = false
	p.OccupiedBy = ""
}

// SetContent changes the content of pier i. No-op for invalid indices.
func (r *PierRegistry) SetContent(i int, c PierContent) {
	if p := r.Get(i); p != nil {
		p.Content = c
	}
}

// CountByContent returns how many piers currently hold content c.
func (r *PierRegistry) CountByContent(c PierContent) int {
	n := 0
	for _, p := range r.piers {
		if p.Content == c {
			n++
		}
	}
	return n
}
