package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every assignment and release.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a simulation.
type SimulationTrace struct {
	Config      TraceConfig        `json:"-" yaml:"-"`
	Assignments []AssignmentRecord `json:"assignments" yaml:"assignments"`
	Releases    []ReleaseRecord    `json:"releases" yaml:"releases"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Assignments: make([]AssignmentRecord, 0),
		Releases:    make([]ReleaseRecord, 0),
	}
}

// RecordAssignment appends an assignment decision record.
func (st *SimulationTrace) RecordAssignment(record AssignmentRecord) {
	st.Assignments = append(st.Assignments, record)
}

// RecordRelease appends a window release record.
func (st *SimulationTrace) RecordRelease(record ReleaseRecord) {
	st.Releases = append(st.Releases, record)
}
