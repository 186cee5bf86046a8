package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig represents a YAML run configuration.
// All fields are optional; explicitly set CLI flags take precedence.
type RunConfig struct {
	Windows       *int   `yaml:"windows"`
	WaitThreshold *int64 `yaml:"wait_threshold"`
	IdleThreshold *int64 `yaml:"idle_threshold"`
	OutputFormat  string `yaml:"output_format"`
	LogLevel      string `yaml:"log_level"`
	TraceLevel    string `yaml:"trace_level"`
	TraceOut      string `yaml:"trace_out"`
	OTelOut       string `yaml:"otel_out"`
	CSVHeader     string `yaml:"csv_header"`
}

// LoadRunConfig parses a YAML run config with strict field checking, so typos
// fail loudly instead of being ignored.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config %s: %w", path, err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply overlays the config onto opts. A field is taken from the config only
// when the matching flag was not set explicitly on the command line.
func (c *RunConfig) Apply(opts runOptions, flagChanged func(name string) bool) runOptions {
	if c.Windows != nil && !flagChanged("windows") {
		opts.Windows = *c.Windows
	}
	if c.WaitThreshold != nil && !flagChanged("wait-threshold") {
		opts.WaitThreshold = *c.WaitThreshold
	}
	if c.IdleThreshold != nil && !flagChanged("idle-threshold") {
		opts.IdleThreshold = *c.IdleThreshold
	}
	if c.OutputFormat != "" && !flagChanged("format") {
		opts.OutputFormat = c.OutputFormat
	}
	if c.TraceLevel != "" && !flagChanged("trace-level") {
		opts.TraceLevel = c.TraceLevel
	}
	if c.TraceOut != "" && !flagChanged("trace-out") {
		opts.TraceOutPath = c.TraceOut
	}
	if c.OTelOut != "" && !flagChanged("otel-out") {
		opts.OTelOutPath = c.OTelOut
	}
	if c.CSVHeader != "" && !flagChanged("csv-header") {
		opts.CSVHeaderPath = c.CSVHeader
	}
	return opts
}
