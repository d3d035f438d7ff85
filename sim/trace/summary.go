package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions   int
	AdmittedCount    int
	DeferredCount    int
	QueueAdmissions  int
	EntranceGrants   int
	MeanEntranceWait float64
	MaxEntranceWait  int64
	PierDistribution map[int]int    // pier index → admissions
	DeferReasons     map[string]int // reason → count of ships sent to a queue
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PierDistribution: make(map[int]int),
		DeferReasons:     make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	for _, a := range st.Admissions {
		if !a.Admitted {
			summary.DeferredCount++
			summary.DeferReasons[a.Reason]++
			continue
		}
		summary.AdmittedCount++
		summary.PierDistribution[a.Pier]++
		if a.Source == SourceQueue {
			summary.QueueAdmissions++
		}
	}

	if len(st.Entrances) > 0 {
		var totalWait int64
		for _, e := range st.Entrances {
			totalWait += e.Waited
			if e.Waited > summary.MaxEntranceWait {
				summary.MaxEntranceWait = e.Waited
			}
		}
		summary.EntranceGrants = len(st.Entrances)
		summary.MeanEntranceWait = float64(totalWait) / float64(len(st.Entrances))
	}

	return summary
}
