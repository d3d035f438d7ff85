// Tracks simulation-wide and per-ship statistics such as queue waits,
// turnaround times, entrance contention and pier utilization.

package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/portsim/portsim/sim/trace"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	SpawnedShips   int `json:"spawned_ships"`
	DroppedSpawns  int `json:"dropped_spawns"` // attempts rejected by the live-ship cap
	CompletedShips int `json:"completed_ships"`
	PeakLiveShips  int `json:"peak_live_ships"`

	CompletedByType map[string]int `json:"completed_by_type"`
	QueuedByType    map[string]int `json:"queued_by_type"` // ships that entered a queue at least once
	PeakQueueLen    map[string]int `json:"peak_queue_len"`

	DirectAdmissions int `json:"direct_admissions"`
	QueueAdmissions  int `json:"queue_admissions"`

	EntranceGrants    int   `json:"entrance_grants"`
	EntranceWaitTicks int64 `json:"entrance_wait_ticks"`
	MaxEntranceWait   int64 `json:"max_entrance_wait"`

	ServicesByPier  []int     `json:"services_by_pier"`
	PierUtilization []float64 `json:"pier_utilization"` // fraction of SimEndedTime each pier was occupied

	ShipQueueWaits  map[string]int64 `json:"ship_queue_waits"` // ship ID -> ticks queued
	ShipTurnarounds map[string]int64 `json:"ship_turnarounds"` // ship ID -> spawn to done

	// Stalled is set once every live ship is queued for a pier content no
	// pier has and no further ship can spawn. The port cannot recover.
	Stalled       bool  `json:"stalled"`
	StalledAt     int64 `json:"stalled_at"`
	StrandedShips int   `json:"stranded_ships"` // live ships when the stall was detected

	AbandonedShips int `json:"abandoned_ships"` // ships still live when the run drained

	SimEndedTime int64 `json:"sim_ended_time"`
}

// NewMetrics creates metrics for a port with the given number of piers.
func NewMetrics(piers int) *Metrics {
	return &Metrics{
		CompletedByType: make(map[string]int),
		QueuedByType:    make(map[string]int),
		PeakQueueLen:    make(map[string]int),
		ServicesByPier:  make([]int, piers),
		PierUtilization: make([]float64, piers),
		ShipQueueWaits:  make(map[string]int64),
		ShipTurnarounds: make(map[string]int64),
	}
}

func (m *Metrics) recordSpawn(live int) {
	m.SpawnedShips++
	m.PeakLiveShips = max(m.PeakLiveShips, live)
}

func (m *Metrics) recordQueued(t ShipType, queueLen int) {
	m.QueuedByType[t.String()]++
	m.PeakQueueLen[t.String()] = max(m.PeakQueueLen[t.String()], queueLen)
}

func (m *Metrics) recordQueueWait(shipID string, wait int64) {
	m.ShipQueueWaits[shipID] += wait
}

func (m *Metrics) recordAdmission(source string) {
	if source == trace.SourceQueue {
		m.QueueAdmissions++
		return
	}
	m.DirectAdmissions++
}

func (m *Metrics) recordEntranceGrant(waited int64) {
	m.EntranceGrants++
	m.EntranceWaitTicks += waited
	m.MaxEntranceWait = max(m.MaxEntranceWait, waited)
}

func (m *Metrics) recordService(pier int) {
	if pier >= 0 && pier < len(m.ServicesByPier) {
		m.ServicesByPier[pier]++
	}
}

func (m *Metrics) recordStall(now int64, live int) {
	m.Stalled = true
	m.StalledAt = now
	m.StrandedShips = live
}

func (m *Metrics) clearStall() {
	m.Stalled = false
	m.StalledAt = 0
	m.StrandedShips = 0
}

func (m *Metrics) recordCompletion(s *Ship) {
	m.CompletedShips++
	m.CompletedByType[s.Type.String()]++
	m.ShipTurnarounds[s.ID] = s.DoneAt - s.SpawnTime
}

// finalize computes end-of-run aggregates. Piers still occupied count up to the end.
// Ships left live once the event queue is empty are counted as abandoned.
func (m *Metrics) finalize(sim *Simulator) {
	m.SimEndedTime = min(sim.Clock, sim.Horizon)
	if sim.Idle() {
		m.AbandonedShips = len(sim.Ships)
	}
	if m.SimEndedTime <= 0 {
		return
	}
	for i, p := range sim.Port.Piers.Items() {
		busy := p.BusyTicks
		if p.Occupied {
			busy += m.SimEndedTime - p.reservedAt
		}
		m.PierUtilization[i] = float64(busy) / float64(m.SimEndedTime)
	}
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Spawned Ships        : %d\n", m.SpawnedShips)
	fmt.Printf("Dropped Spawns       : %d\n", m.DroppedSpawns)
	fmt.Printf("Completed Ships      : %d\n", m.CompletedShips)
	fmt.Printf("Peak Live Ships      : %d\n", m.PeakLiveShips)
	for _, t := range sortedKeys(m.CompletedByType) {
		fmt.Printf("  completed %-10s: %d\n", t, m.CompletedByType[t])
	}
	fmt.Printf("Direct Admissions    : %d\n", m.DirectAdmissions)
	fmt.Printf("Queue Admissions     : %d\n", m.QueueAdmissions)
	printDistribution("Queue Wait", NewDistribution(m.ShipQueueWaits))
	printDistribution("Turnaround", NewDistribution(m.ShipTurnarounds))
	if m.EntranceGrants > 0 {
		fmt.Printf("Mean Entrance Wait   : %.2f ticks\n", float64(m.EntranceWaitTicks)/float64(m.EntranceGrants))
		fmt.Printf("Max Entrance Wait    : %d ticks\n", m.MaxEntranceWait)
	}
	if m.Stalled {
		fmt.Printf("Stalled At           : tick %d (%d ships stranded)\n", m.StalledAt, m.StrandedShips)
	}
	if m.AbandonedShips > 0 {
		fmt.Printf("Abandoned Ships      : %d\n", m.AbandonedShips)
	}
	for i, u := range m.PierUtilization {
		fmt.Printf("Pier %d               : %d services, %.1f%% occupied\n", i+1, m.ServicesByPier[i], u*100)
	}
}

func printDistribution(name string, d Distribution) {
	if d.Count == 0 {
		fmt.Printf("%-21s: n/a\n", name)
		return
	}
	fmt.Printf("%-21s: mean %.0f, p50 %.0f, p90 %.0f, p99 %.0f, max %.0f ticks (%d ships)\n",
		name, d.Mean, d.P50, d.P90, d.P99, d.Max, d.Count)
}

// SaveResults writes the metrics as indented JSON to path.
func (m *Metrics) SaveResults(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
