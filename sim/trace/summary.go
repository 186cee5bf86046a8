package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int         `json:"total_decisions" yaml:"total_decisions"`
	AssignedCount      int         `json:"assigned" yaml:"assigned"`
	SkippedCount       int         `json:"skipped" yaml:"skipped"`
	ReleaseCount       int         `json:"releases" yaml:"releases"`
	MeanWait           float64     `json:"mean_wait" yaml:"mean_wait"`
	MaxWait            int64       `json:"max_wait" yaml:"max_wait"`
	UniqueWindows      int         `json:"unique_windows" yaml:"unique_windows"`
	WindowDistribution map[int]int `json:"window_distribution" yaml:"window_distribution"` // window index → assignments
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		WindowDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Assignments)
	summary.ReleaseCount = len(st.Releases)

	if len(st.Assignments) > 0 {
		var totalWait int64
		for _, a := range st.Assignments {
			totalWait += a.Wait
			if a.Wait > summary.MaxWait {
				summary.MaxWait = a.Wait
			}
			if a.Skipped() {
				summary.SkippedCount++
				continue
			}
			summary.AssignedCount++
			summary.WindowDistribution[a.Window]++
		}
		summary.MeanWait = float64(totalWait) / float64(len(st.Assignments))
	}

	summary.UniqueWindows = len(summary.WindowDistribution)

	return summary
}
