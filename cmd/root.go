package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/registrar-sim/registrar-sim/sim"
	"github.com/registrar-sim/registrar-sim/sim/trace"
)

var (
	// CLI flags for the run command
	logLevel       string // Log verbosity level
	configPath     string // Optional YAML run config
	csvHeaderPath  string // YAML header of a CSV schedule; selects CSV input
	numWindows     int    // Override of the window count in the schedule (0 = use schedule)
	waitThreshold  int64  // Wait (ticks) a student must exceed to count as a long wait
	idleThreshold  int64  // Idle time (ticks) a window must exceed to count as long-idle
	outputFormat   string // text, json or yaml
	traceLevel     string // Decision trace level
	traceOutPath   string // Where to write the decision trace (YAML)
	otelOutputPath string // Where to write OpenTelemetry spans (empty = disabled)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "Tick-driven simulator for registrar service windows",
}

// runCmd simulates one arrival schedule and prints its statistics
var runCmd = &cobra.Command{
	Use:   "run <schedule>",
	Short: "Run the registrar simulation over an arrival schedule",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		opts := runOptions{
			SchedulePath:  args[0],
			CSVHeaderPath: csvHeaderPath,
			Windows:       numWindows,
			WaitThreshold: waitThreshold,
			IdleThreshold: idleThreshold,
			OutputFormat:  outputFormat,
			TraceLevel:    traceLevel,
			TraceOutPath:  traceOutPath,
			OTelOutPath:   otelOutputPath,
		}
		if configPath != "" {
			cfg, err := LoadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load run config: %v", err)
			}
			opts = cfg.Apply(opts, cmd.Flags().Changed)
			if cfg.LogLevel != "" && !cmd.Flags().Changed("log") {
				level, err := logrus.ParseLevel(cfg.LogLevel)
				if err != nil {
					logrus.Fatalf("Invalid log level in %s: %s", configPath, cfg.LogLevel)
				}
				logrus.SetLevel(level)
			}
		}

		if err := runSimulation(cmd.Context(), opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML run config")
	runCmd.Flags().StringVar(&csvHeaderPath, "csv-header", "", "YAML header for a CSV schedule; when set, <schedule> is read as CSV")
	runCmd.Flags().IntVar(&numWindows, "windows", 0, "Number of windows (0 = use the schedule's window count)")
	runCmd.Flags().Int64Var(&waitThreshold, "wait-threshold", sim.DefaultWaitThreshold, "Count students waiting strictly longer than this many ticks")
	runCmd.Flags().Int64Var(&idleThreshold, "idle-threshold", sim.DefaultIdleThreshold, "Count windows idle strictly longer than this many ticks")
	runCmd.Flags().StringVar(&outputFormat, "format", formatText, "Report format (text, json, yaml)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&traceOutPath, "trace-out", "", "Write the decision trace to this YAML file (requires --trace-level decisions)")
	runCmd.Flags().StringVar(&otelOutputPath, "otel-out", "", "Write OpenTelemetry spans to this file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertCmd)
}
