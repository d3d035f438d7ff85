package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portsim/portsim/sim/trace"
)

// Lifecycle tick offsets for the default timing, measured from injection.
const (
	tArrive       = 1200 // approach
	tAtEntrance   = tArrive + 650   // to entrance
	tInPort       = tAtEntrance + 850
	tDocked       = tInPort + 900
	tServiced     = tDocked + 5000
	tAtExit       = tServiced + 950
	tOutOfChannel = tAtExit + 1100
	tDeparted     = tOutOfChannel + 1400
)

// discardSink swallows log messages so tests stay quiet.
type discardSink struct{}

func (discardSink) Log(string) {}

// newTestSimulator builds a simulator with the default timing, the given pier
// contents, strict invariant checking, decision tracing and the spawner off.
// Ships are added with InjectShip.
func newTestSimulator(t *testing.T, contents []PierContent, mutate func(*SimConfig)) *Simulator {
	t.Helper()
	cfg := DefaultSimConfig()
	cfg.Horizon = 100_000_000
	cfg.StrictInvariants = true
	cfg.Port.Piers = len(contents)
	cfg.Port.InitialFilled = nil
	for i, c := range contents {
		if c == PierFilled {
			cfg.Port.InitialFilled = append(cfg.Port.InitialFilled, i)
		}
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSimulator(cfg,
		WithLogSink(discardSink{}),
		WithTrace(trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})),
	)
	require.NoError(t, err)
	s.StopSpawning()
	return s
}

// runChecked drains the event queue, checking invariants after every event.
func runChecked(t *testing.T, s *Simulator) {
	t.Helper()
	for s.Step() {
		require.NoError(t, s.CheckInvariants(), "tick %d", s.Clock)
	}
}

// recordingMover remembers every movement it is notified of.
type recordingMover struct {
	targets map[string][]Position
}

func newRecordingMover() *recordingMover {
	return &recordingMover{targets: make(map[string][]Position)}
}

func (m *recordingMover) MoveTo(s *Ship, target Position, _ int64) {
	m.targets[s.ID] = append(m.targets[s.ID], target)
}

// moverFunc adapts a function to the Mover interface.
type moverFunc func(ship *Ship, target Position, durationMs int64)

func (f moverFunc) MoveTo(ship *Ship, target Position, durationMs int64) { f(ship, target, durationMs) }
