// Package trace provides decision-trace recording for registrar simulations.
// It has no dependencies on sim/ and stores pure data types only.
package trace

// SkippedWindow is the Window value of an assignment that needed no service.
const SkippedWindow = -1

// AssignmentRecord captures a student leaving the queue.
type AssignmentRecord struct {
	RequestID int   `json:"request_id" yaml:"request_id"`
	Tick      int64 `json:"tick" yaml:"tick"`
	Window    int   `json:"window" yaml:"window"` // SkippedWindow for zero-amount requests
	Wait      int64 `json:"wait" yaml:"wait"`
	Amount    int64 `json:"amount" yaml:"amount"`
}

// Skipped reports whether the student was served without occupying a window.
func (r AssignmentRecord) Skipped() bool {
	return r.Window == SkippedWindow
}

// ReleaseRecord captures a window becoming free after completing a request.
type ReleaseRecord struct {
	Tick   int64 `json:"tick" yaml:"tick"`
	Window int   `json:"window" yaml:"window"`
}
