// Collects raw per-student wait samples and per-window idle samples and
// reduces them into the end-of-run report.

package sim

import (
	"fmt"
	"io"
)

// NoData is reported for statistics that are undefined because there were no
// samples (no students, or no windows).
const NoData = -1

// Metrics holds the raw samples gathered during a simulation.
type Metrics struct {
	WaitSamples []int64 // one per dequeued student, in dequeue order
	IdleSamples []int64 // one per window, in index order; filled when Run ends
	TicksRun    int64   // value of the clock when the simulation ended
	Assigned    int     // students that occupied a window
	Skipped     int     // students with a zero service amount
	Unserved    int     // students never dequeued (only possible with zero windows)
}

// NewMetrics returns an empty Metrics sized for the expected number of students.
func NewMetrics(expectedStudents int) *Metrics {
	return &Metrics{
		WaitSamples: make([]int64, 0, expectedStudents),
	}
}

// RecordWait appends one student's wait sample.
func (m *Metrics) RecordWait(wait int64) {
	m.WaitSamples = append(m.WaitSamples, wait)
}

// StudentStats summarizes how long students waited before being served.
type StudentStats struct {
	Count              int     `json:"count" yaml:"count"`
	MeanWait           float64 `json:"mean_wait" yaml:"mean_wait"`
	MedianWait         float64 `json:"median_wait" yaml:"median_wait"`
	LongestWait        int64   `json:"longest_wait" yaml:"longest_wait"`
	WaitThreshold      int64   `json:"wait_threshold" yaml:"wait_threshold"`
	CountOverThreshold int     `json:"count_over_threshold" yaml:"count_over_threshold"`
}

// WindowStats summarizes how long windows sat idle.
type WindowStats struct {
	Count              int     `json:"count" yaml:"count"`
	MeanIdle           float64 `json:"mean_idle" yaml:"mean_idle"`
	LongestIdle        int64   `json:"longest_idle" yaml:"longest_idle"`
	IdleThreshold      int64   `json:"idle_threshold" yaml:"idle_threshold"`
	CountOverThreshold int     `json:"count_over_threshold" yaml:"count_over_threshold"`
}

// Report is the aggregated result of one simulation.
type Report struct {
	Students StudentStats `json:"students" yaml:"students"`
	Windows  WindowStats  `json:"windows" yaml:"windows"`
	TicksRun int64        `json:"ticks_run" yaml:"ticks_run"`
	Skipped  int          `json:"skipped" yaml:"skipped"`
	Unserved int          `json:"unserved" yaml:"unserved"`
}

// Report reduces the raw samples into student and window statistics.
// Counts use strict comparison against the thresholds. Undefined statistics
// (empty sample sets) are reported as NoData.
func (m *Metrics) Report(waitThreshold, idleThreshold int64) *Report {
	r := &Report{
		TicksRun: m.TicksRun,
		Skipped:  m.Skipped,
		Unserved: m.Unserved,
	}

	r.Students = StudentStats{
		Count:              len(m.WaitSamples),
		MeanWait:           NoData,
		MedianWait:         NoData,
		LongestWait:        NoData,
		WaitThreshold:      waitThreshold,
		CountOverThreshold: CountAbove(m.WaitSamples, waitThreshold),
	}
	if len(m.WaitSamples) > 0 {
		r.Students.MeanWait = CalculateMean(m.WaitSamples)
		r.Students.MedianWait = CalculateMedian(m.WaitSamples)
		r.Students.LongestWait = MaxOf(m.WaitSamples, NoData)
	}

	r.Windows = WindowStats{
		Count:              len(m.IdleSamples),
		MeanIdle:           NoData,
		LongestIdle:        NoData,
		IdleThreshold:      idleThreshold,
		CountOverThreshold: CountAbove(m.IdleSamples, idleThreshold),
	}
	if len(m.IdleSamples) > 0 {
		r.Windows.MeanIdle = CalculateMean(m.IdleSamples)
		r.Windows.LongestIdle = MaxOf(m.IdleSamples, NoData)
	}
	return r
}

// Print writes the human-readable report, one statistic per line.
func (r *Report) Print(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("The mean student wait time: %.6g", r.Students.MeanWait),
		fmt.Sprintf("The median student wait time: %.6g", r.Students.MedianWait),
		fmt.Sprintf("The longest student wait time: %d", r.Students.LongestWait),
		fmt.Sprintf("The number of students waiting over %d minutes: %d", r.Students.WaitThreshold, r.Students.CountOverThreshold),
		fmt.Sprintf("The mean window idle time: %.6g", r.Windows.MeanIdle),
		fmt.Sprintf("The longest window idle time: %d", r.Windows.LongestIdle),
		fmt.Sprintf("Number of windows idle for over %d minutes: %d", r.Windows.IdleThreshold, r.Windows.CountOverThreshold),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}
