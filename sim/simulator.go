// sim/simulator.go
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/portsim/portsim/sim/trace"
)

// Simulator is the core object that holds simulation time, port state, the
// live ships and the event loop. It is single-threaded: every mutation
// happens inside an event's Execute, one event at a time.
type Simulator struct {
	Clock   int64
	Horizon int64
	Config  SimConfig
	RunID   string

	// EventQueue has all pending events, ordered by (timestamp, priority, sequence).
	EventQueue EventQueue
	nextSeqID  int64

	Port    *Port
	Queues  *QueueScheduler
	Spawner *Spawner
	// Ships holds every live ship by ID. A ship leaves this map when it reaches StateDone.
	Ships map[string]*Ship

	Metrics *Metrics
	Trace   *trace.SimulationTrace
	HUD     *HUD

	// PassEvent is the pending scheduling pass, nil when none is scheduled.
	PassEvent Event

	rng         *PartitionedRNG
	layoutRNG   *rand.Rand
	nextShipSeq int
	mover       Mover
	log         LogSink
	hudLines    int
	logger      *logrus.Entry
	spawnArmed  bool // a SpawnEvent is pending
}

// NewSimulator builds a simulator from cfg. The configuration is validated;
// an invalid one returns an error. The first spawn is scheduled at tick 0.
func NewSimulator(cfg SimConfig, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	s := &Simulator{
		Clock:      0,
		Horizon:    cfg.Horizon,
		Config:     cfg,
		RunID:      rng.RunID(),
		EventQueue: make(EventQueue, 0),
		Port:       NewPort(cfg.Port.initialContents()),
		Queues:     NewQueueScheduler(),
		Spawner:    NewSpawner(cfg.Spawn, rng.ForSubsystem(SubsystemSpawner)),
		Ships:      make(map[string]*Ship),
		Metrics:    NewMetrics(cfg.Port.Piers),
		rng:        rng,
		layoutRNG:  rng.ForSubsystem(SubsystemLayout),
		mover:      nopMover{},
	}
	s.logger = logrus.WithField("run", s.RunID)
	s.log = LogrusSink{Entry: s.logger}
	for _, opt := range opts {
		opt(s)
	}
	if s.hudLines > 0 {
		s.HUD = NewHUD(s.hudLines, func() int64 { return s.Clock })
		s.log = MultiSink{s.log, s.HUD}
	}

	s.armSpawn(0)
	return s, nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.nextSeqID++
	sim.EventQueue.push(ev, sim.nextSeqID)
}

// Step executes the next event. Returns false when no event remains at or
// before the horizon.
func (sim *Simulator) Step() bool {
	ev := sim.EventQueue.peek()
	if ev == nil || ev.Timestamp() > sim.Horizon {
		return false
	}
	sim.EventQueue.popNext()
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("Step: event %T at %d is before clock %d", ev, ev.Timestamp(), sim.Clock))
	}
	sim.Clock = ev.Timestamp()
	sim.logger.Debugf("[tick %07d] Executing %T", sim.Clock, ev)
	ev.Execute(sim)
	if sim.Config.StrictInvariants {
		if err := sim.CheckInvariants(); err != nil {
			panic(fmt.Sprintf("[tick %07d] invariant violated after %T: %v", sim.Clock, ev, err))
		}
	}
	return true
}

// Run executes events until the queue drains or the horizon is passed.
func (sim *Simulator) Run() {
	for sim.Step() {
	}
	sim.Metrics.finalize(sim)
	if sim.Metrics.AbandonedShips > 0 {
		sim.logger.Warnf("[tick %07d] %d queued ships abandoned: no pier matches their type", sim.Clock, sim.Metrics.AbandonedShips)
	}
	sim.logger.Infof("[tick %07d] Simulation ended", sim.Clock)
}

// RunUntil executes every event with a timestamp <= t and then advances the
// clock to t (bounded by the horizon). Used by real-time drivers and tests
// that step time deterministically.
func (sim *Simulator) RunUntil(t int64) {
	for {
		ev := sim.EventQueue.peek()
		if ev == nil || ev.Timestamp() > t {
			break
		}
		if !sim.Step() {
			break
		}
	}
	if t > sim.Clock {
		sim.Clock = min(t, sim.Horizon)
	}
}

// Idle reports whether no events remain.
func (sim *Simulator) Idle() bool {
	return sim.EventQueue.Len() == 0
}

// StopSpawning ends ship generation. Ships that hold a pier or are in
// motion run to completion. Queued ships whose type no pier can serve are
// abandoned: Run ends with them still live and counts them in
// Metrics.AbandonedShips.
func (sim *Simulator) StopSpawning() {
	if sim.Spawner.Stopped() {
		return
	}
	sim.Spawner.Stop()
	sim.log.Log("Port closed to new arrivals")
	sim.checkStall()
}

// Ship returns the live ship with the given ID, or nil.
func (sim *Simulator) Ship(id string) *Ship {
	return sim.Ships[id]
}

func (sim *Simulator) isLive(id string) bool {
	_, ok := sim.Ships[id]
	return ok
}

// requestPass schedules a scheduling pass at the current tick unless one is pending.
func (sim *Simulator) requestPass() {
	if sim.PassEvent != nil {
		return
	}
	ev := &SchedulingPassEvent{time: sim.Clock}
	sim.Schedule(ev)
	sim.PassEvent = ev
}

// move starts a motion from the ship's current position and notifies the mover.
func (sim *Simulator) move(s *Ship, target Position, durationMs int64) {
	s.Motion = Motion{
		From:  s.Motion.At(sim.Clock),
		To:    target,
		Start: sim.Clock,
		End:   sim.Clock + durationMs,
	}
	sim.mover.MoveTo(s, target, durationMs)
}
