package sim

import "github.com/portsim/portsim/sim/trace"

// Option customises a Simulator at construction.
type Option func(*Simulator)

// WithMover attaches the motion layer notified of every movement.
func WithMover(m Mover) Option {
	return func(s *Simulator) {
		if m != nil {
			s.mover = m
		}
	}
}

// WithLogSink replaces the default logrus sink for human-readable messages.
func WithLogSink(sink LogSink) Option {
	return func(s *Simulator) {
		if sink != nil {
			s.log = sink
		}
	}
}

// WithHUD keeps the most recent maxLines messages for snapshots, in addition
// to the configured log sink.
func WithHUD(maxLines int) Option {
	return func(s *Simulator) {
		s.hudLines = maxLines
	}
}

// WithTrace records admission and entrance decisions into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(s *Simulator) {
		s.Trace = st
	}
}
