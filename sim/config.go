package sim

import (
	"fmt"

	"github.com/registrar-sim/registrar-sim/sim/trace"
)

const (
	// DefaultWaitThreshold is the wait (in ticks) a student must exceed to be
	// counted as a long wait.
	DefaultWaitThreshold int64 = 10
	// DefaultIdleThreshold is the idle time (in ticks) a window must exceed to
	// be counted as a long-idle window.
	DefaultIdleThreshold int64 = 5
)

// SimConfig groups the parameters of a single registrar simulation.
type SimConfig struct {
	NumWindows    int              // number of service windows (>= 0)
	WaitThreshold int64            // strict lower bound for "long wait" students (>= 0)
	IdleThreshold int64            // strict lower bound for "long idle" windows (>= 0)
	TraceLevel    trace.TraceLevel // "none" (default) or "decisions"
}

// NewSimConfig returns a config for numWindows windows with default thresholds
// and tracing disabled.
func NewSimConfig(numWindows int) SimConfig {
	return SimConfig{
		NumWindows:    numWindows,
		WaitThreshold: DefaultWaitThreshold,
		IdleThreshold: DefaultIdleThreshold,
		TraceLevel:    trace.TraceLevelNone,
	}
}

// Validate checks that all fields are within their accepted ranges.
func (c SimConfig) Validate() error {
	if c.NumWindows < 0 {
		return fmt.Errorf("number of windows must be >= 0, got %d", c.NumWindows)
	}
	if c.WaitThreshold < 0 {
		return fmt.Errorf("wait threshold must be >= 0, got %d", c.WaitThreshold)
	}
	if c.IdleThreshold < 0 {
		return fmt.Errorf("idle threshold must be >= 0, got %d", c.IdleThreshold)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}
