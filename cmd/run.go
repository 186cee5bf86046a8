package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"github.com/registrar-sim/registrar-sim/sim"
	"github.com/registrar-sim/registrar-sim/sim/trace"
	"github.com/registrar-sim/registrar-sim/sim/workload"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// runOptions carries everything one simulation run needs, after flags and
// the optional YAML config have been merged.
type runOptions struct {
	SchedulePath  string
	CSVHeaderPath string
	Windows       int
	WaitThreshold int64
	IdleThreshold int64
	OutputFormat  string
	TraceLevel    string
	TraceOutPath  string
	OTelOutPath   string
}

// RunOutput is the machine-readable result of a run.
type RunOutput struct {
	RunID    string              `json:"run_id" yaml:"run_id"`
	Schedule string              `json:"schedule" yaml:"schedule"`
	Windows  int                 `json:"windows" yaml:"windows"`
	Students int                 `json:"students" yaml:"students"`
	Report   *sim.Report         `json:"report" yaml:"report"`
	Trace    *trace.TraceSummary `json:"trace_summary,omitempty" yaml:"trace_summary,omitempty"`
}

func (o runOptions) validate() error {
	switch o.OutputFormat {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", o.OutputFormat)
	}
	if !trace.IsValidTraceLevel(o.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", o.TraceLevel)
	}
	if o.TraceOutPath != "" && trace.TraceLevel(o.TraceLevel) != trace.TraceLevelDecisions {
		return fmt.Errorf("--trace-out requires trace level %q", trace.TraceLevelDecisions)
	}
	if o.Windows < 0 {
		return fmt.Errorf("window count must be >= 0, got %d", o.Windows)
	}
	return nil
}

// loadSchedule reads the schedule in text form, or CSV form when a header is given.
func loadSchedule(opts runOptions) (*workload.Schedule, error) {
	if opts.CSVHeaderPath != "" {
		s, _, err := workload.LoadScheduleCSV(opts.CSVHeaderPath, opts.SchedulePath)
		return s, err
	}
	return workload.LoadSchedule(opts.SchedulePath)
}

// runSimulation loads the schedule, runs one simulation and writes the report to out.
func runSimulation(ctx context.Context, opts runOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := opts.validate(); err != nil {
		return err
	}

	schedule, err := loadSchedule(opts)
	if err != nil {
		return err
	}

	cfg := sim.NewSimConfig(schedule.NumWindows)
	if opts.Windows > 0 {
		cfg.NumWindows = opts.Windows
	}
	cfg.WaitThreshold = opts.WaitThreshold
	cfg.IdleThreshold = opts.IdleThreshold
	if opts.TraceLevel != "" {
		cfg.TraceLevel = trace.TraceLevel(opts.TraceLevel)
	}

	runID := uuid.NewString()
	shutdown, err := setupTracing(opts.OTelOutPath)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logrus.Warnf("Failed to flush tracing: %v", err)
		}
	}()

	_, span := tracer().Start(ctx, "simulate")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", runID),
		attribute.String("schedule.path", opts.SchedulePath),
		attribute.Int("windows", cfg.NumWindows),
		attribute.Int("students", schedule.NumStudents()),
	)

	s, err := sim.NewSimulator(cfg, schedule.Queue())
	if err != nil {
		return err
	}
	logrus.Infof("Run %s: simulating %s with %d windows", runID, opts.SchedulePath, cfg.NumWindows)
	s.Run()

	report := s.Report()
	span.SetAttributes(
		attribute.Int64("ticks_run", report.TicksRun),
		attribute.Float64("students.mean_wait", report.Students.MeanWait),
		attribute.Float64("windows.mean_idle", report.Windows.MeanIdle),
	)

	if opts.TraceOutPath != "" {
		if err := writeTrace(s.Trace, opts.TraceOutPath); err != nil {
			return err
		}
	}

	output := &RunOutput{
		RunID:    runID,
		Schedule: opts.SchedulePath,
		Windows:  cfg.NumWindows,
		Students: schedule.NumStudents(),
		Report:   report,
	}
	if s.Trace != nil {
		output.Trace = trace.Summarize(s.Trace)
	}
	return writeOutput(out, output, opts.OutputFormat)
}

// writeOutput renders the run result in the requested format.
func writeOutput(out io.Writer, output *RunOutput, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return fmt.Errorf("encoding JSON report: %w", err)
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(output); err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
		return enc.Close()
	default:
		return output.Report.Print(out)
	}
}

func writeTrace(st *trace.SimulationTrace, path string) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshaling decision trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing decision trace: %w", err)
	}
	logrus.Infof("Decision trace written to %s", path)
	return nil
}
