package sim

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Mover is the motion layer. The simulator notifies it of every movement;
// completion is driven by the simulator's own event queue, so a Mover never
// blocks or reports back.
type Mover interface {
	MoveTo(ship *Ship, target Position, durationMs int64)
}

type nopMover struct{}

func (nopMover) MoveTo(*Ship, Position, int64) {}

// LogSink receives human-readable event messages. Log must not block or fail.
type LogSink interface {
	Log(message string)
}

// LogrusSink forwards messages to logrus at Info level.
type LogrusSink struct {
	Entry *logrus.Entry
}

func (s LogrusSink) Log(message string) {
	if s.Entry == nil {
		logrus.Info(message)
		return
	}
	s.Entry.Info(message)
}

// MultiSink fans a message out to several sinks.
type MultiSink []LogSink

func (m MultiSink) Log(message string) {
	for _, s := range m {
		s.Log(message)
	}
}

// DefaultHUDLines is the number of messages a HUD keeps.
const DefaultHUDLines = 12

// HUD keeps the most recent messages, newest first, stamped with the
// simulated clock. Safe for concurrent readers.
type HUD struct {
	mu       sync.Mutex
	lines    []string
	maxLines int
	clock    func() int64
}

// NewHUD creates a HUD holding up to maxLines messages. clock supplies the
// tick used to stamp each line; nil stamps every line with 0.
func NewHUD(maxLines int, clock func() int64) *HUD {
	if maxLines <= 0 {
		maxLines = DefaultHUDLines
	}
	if clock == nil {
		clock = func() int64 { return 0 }
	}
	return &HUD{maxLines: maxLines, clock: clock}
}

func (h *HUD) Log(message string) {
	line := fmt.Sprintf("[%s] %s", formatTicks(h.clock()), message)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append([]string{line}, h.lines...)
	if len(h.lines) > h.maxLines {
		h.lines = h.lines[:h.maxLines]
	}
}

// Lines returns a copy of the retained messages, newest first.
func (h *HUD) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// formatTicks renders a millisecond tick count as hh:mm:ss.
func formatTicks(ticks int64) string {
	secs := ticks / 1000
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}
