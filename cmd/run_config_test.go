package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRunConfig_AllFields(t *testing.T) {
	path := writeRunConfig(t, `
windows: 4
wait_threshold: 15
idle_threshold: 2
output_format: json
log_level: debug
trace_level: decisions
trace_out: trace.yaml
`)
	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Windows)
	assert.Equal(t, 4, *cfg.Windows)
	assert.Equal(t, int64(15), *cfg.WaitThreshold)
	assert.Equal(t, int64(2), *cfg.IdleThreshold)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "decisions", cfg.TraceLevel)
	assert.Equal(t, "trace.yaml", cfg.TraceOut)
}

func TestLoadRunConfig_UnknownField_Fails(t *testing.T) {
	// Strict parsing: typos must cause errors
	path := writeRunConfig(t, "wait_treshold: 3\n")
	_, err := LoadRunConfig(path)
	assert.Error(t, err)
}

func TestRunConfig_Apply_ExplicitFlagsWin(t *testing.T) {
	// GIVEN a config overriding thresholds and format
	wait, idle := int64(20), int64(8)
	cfg := &RunConfig{WaitThreshold: &wait, IdleThreshold: &idle, OutputFormat: "yaml"}
	opts := runOptions{WaitThreshold: 10, IdleThreshold: 3, OutputFormat: "text"}

	// WHEN applied while --idle-threshold was set on the command line
	changed := map[string]bool{"idle-threshold": true}
	got := cfg.Apply(opts, func(name string) bool { return changed[name] })

	// THEN config fills unset flags and leaves the explicit one alone
	assert.Equal(t, int64(20), got.WaitThreshold)
	assert.Equal(t, int64(3), got.IdleThreshold)
	assert.Equal(t, "yaml", got.OutputFormat)
}

func TestRunConfig_Apply_ZeroWindowsFromConfig(t *testing.T) {
	zero := 0
	cfg := &RunConfig{Windows: &zero}
	got := cfg.Apply(runOptions{Windows: 3}, func(string) bool { return false })
	assert.Equal(t, 0, got.Windows)
}
