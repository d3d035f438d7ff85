package sim

// Position is a point in scene coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Motion is a linear movement between two positions over [Start, End] ticks.
type Motion struct {
	From  Position `json:"from"`
	To    Position `json:"to"`
	Start int64    `json:"start"`
	End   int64    `json:"end"`
}

// At interpolates the position at tick t, clamped to the motion's endpoints.
func (m Motion) At(t int64) Position {
	if t >= m.End || m.End <= m.Start {
		return m.To
	}
	if t <= m.Start {
		return m.From
	}
	f := float64(t-m.Start) / float64(m.End-m.Start)
	return Position{
		X: m.From.X + (m.To.X-m.From.X)*f,
		Y: m.From.Y + (m.To.Y-m.From.Y)*f,
	}
}

// LayoutConfig places the port's fixed features in scene coordinates.
// All targets are pure functions of it, recomputed on demand.
type LayoutConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`

	PierX      float64 `yaml:"pier_x" toml:"pier_x"`
	PierStartY float64 `yaml:"pier_start_y" toml:"pier_start_y"`
	PierGap    float64 `yaml:"pier_gap" toml:"pier_gap"`
	PierW      float64 `yaml:"pier_w" toml:"pier_w"`
	PierH      float64 `yaml:"pier_h" toml:"pier_h"`

	EntranceX float64 `yaml:"entrance_x" toml:"entrance_x"`
	EntranceY float64 `yaml:"entrance_y" toml:"entrance_y"`

	ShipW float64 `yaml:"ship_w" toml:"ship_w"`
	ShipH float64 `yaml:"ship_h" toml:"ship_h"`

	QueueX        float64 `yaml:"queue_x" toml:"queue_x"`
	QueueSlotStep float64 `yaml:"queue_slot_step" toml:"queue_slot_step"`
	QueueLoadY    float64 `yaml:"queue_load_y" toml:"queue_load_y"`
	QueueUnloadY  float64 `yaml:"queue_unload_y" toml:"queue_unload_y"`

	SpawnMinY  float64 `yaml:"spawn_min_y" toml:"spawn_min_y"`
	SpawnRange float64 `yaml:"spawn_range" toml:"spawn_range"`
}

// DefaultLayoutConfig returns the scene geometry of the reference port.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Width:         1100,
		Height:        650,
		PierX:         4,
		PierStartY:    60,
		PierGap:       15,
		PierW:         50,
		PierH:         120,
		EntranceX:     220,
		EntranceY:     325,
		ShipW:         110,
		ShipH:         45,
		QueueX:        520,
		QueueSlotStep: 140,
		QueueLoadY:    420,
		QueueUnloadY:  120,
		SpawnMinY:     120,
		SpawnRange:    420,
	}
}

func (l LayoutConfig) laneY(t ShipType) float64 {
	if t == ShipTypeLoad {
		return l.QueueLoadY
	}
	return l.QueueUnloadY
}

// SpawnPoint is where a ship appears, off the right edge of the scene.
// jitter in [0,1) spreads ships vertically.
func (l LayoutConfig) SpawnPoint(jitter float64) Position {
	return Position{X: l.Width + 60, Y: l.SpawnMinY + jitter*l.SpawnRange}
}

// ArrivalPoint is the end of the approach: just behind the first queue slot of the ship's lane.
func (l LayoutConfig) ArrivalPoint(t ShipType) Position {
	return Position{X: l.QueueX + l.QueueSlotStep, Y: l.laneY(t)}
}

// QueueSlot is the waiting position for queue index idx: base + idx * step.
func (l LayoutConfig) QueueSlot(t ShipType, idx int) Position {
	return Position{X: l.QueueX + float64(idx)*l.QueueSlotStep, Y: l.laneY(t)}
}

// EntranceOutside is the holding point on the sea side of the channel.
func (l LayoutConfig) EntranceOutside() Position {
	return Position{X: l.EntranceX + 70, Y: l.EntranceY}
}

// EntranceInside is the point where a ship is clear of the channel on the port side.
func (l LayoutConfig) EntranceInside() Position {
	return Position{X: l.EntranceX - 40, Y: l.EntranceY}
}

// ExitPoint is where an outbound ship is clear of the channel on the sea side.
func (l LayoutConfig) ExitPoint() Position {
	return Position{X: l.EntranceX + 90, Y: l.EntranceY}
}

// DeparturePoint is off the right edge of the scene.
func (l LayoutConfig) DeparturePoint() Position {
	return Position{X: l.Width + 160, Y: l.EntranceY}
}

// PierOrigin is the top-left corner of pier i.
func (l LayoutConfig) PierOrigin(i int) Position {
	return Position{X: l.PierX, Y: l.PierStartY + float64(i)*(l.PierH+l.PierGap)}
}

// DockPoint centres a ship on pier i.
func (l LayoutConfig) DockPoint(i int) Position {
	o := l.PierOrigin(i)
	return Position{
		X: o.X + (l.PierW-l.ShipW)/2,
		Y: o.Y + (l.PierH-l.ShipH)/2,
	}
}
