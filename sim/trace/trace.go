package trace

// TraceLevel selects which port decisions are recorded.
type TraceLevel string

const (
	// TraceLevelNone records nothing; Enabled reports false.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions records every admission, queueing and entrance grant.
	TraceLevelDecisions TraceLevel = "decisions"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // same as none
}

// IsValidTraceLevel reports whether level is accepted by --trace-level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig is fixed for a run. With Level set to TraceLevelDecisions the
// simulator records why each arriving ship was admitted or queued, and who
// crossed the entrance channel when.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace holds the decision log of one port run, in clock order.
type SimulationTrace struct {
	Config     TraceConfig
	Admissions []AdmissionRecord // arrivals queued or admitted, and queue admissions
	Entrances  []EntranceRecord  // one per channel crossing, inbound and outbound
}

// NewSimulationTrace returns an empty decision log for a run using config.
// Pass it to the simulator with WithTrace.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Admissions: make([]AdmissionRecord, 0),
		Entrances:  make([]EntranceRecord, 0),
	}
}

// Enabled reports whether decisions are being recorded. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordAdmission logs an arrival or queue decision for one ship.
func (st *SimulationTrace) RecordAdmission(record AdmissionRecord) {
	st.Admissions = append(st.Admissions, record)
}

// RecordEntrance logs a grant of the entrance channel.
func (st *SimulationTrace) RecordEntrance(record EntranceRecord) {
	st.Entrances = append(st.Entrances, record)
}
