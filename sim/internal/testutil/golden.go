// Package testutil provides shared test infrastructure for the registrar simulator.
// It holds the golden dataset types and assertion helpers used across
// sim/ and sim/workload/ test packages. It must not import sim/.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenBatch is one arrival batch of a golden test case.
type GoldenBatch struct {
	Arrival int64   `json:"arrival"`
	Amounts []int64 `json:"amounts"`
}

// GoldenTestCase represents a single test case from the golden dataset.
type GoldenTestCase struct {
	Name    string        `json:"name"`
	Windows int           `json:"windows"`
	Batches []GoldenBatch `json:"batches"`
	Metrics GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected outcome of a golden test case.
type GoldenMetrics struct {
	// Raw samples
	Waits       []int64 `json:"waits"` // in dequeue order
	IdleSamples []int64 `json:"idle_samples"`
	TicksRun    int64   `json:"ticks_run"`

	// Student statistics
	StudentMean    float64 `json:"student_mean"`
	StudentMedian  float64 `json:"student_median"`
	StudentLongest int64   `json:"student_longest"`
	StudentsOver10 int     `json:"students_over_10"`

	// Window statistics
	WindowMean    float64 `json:"window_mean"`
	WindowLongest int64   `json:"window_longest"`
	WindowsOver5  int     `json:"windows_over_5"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertInt64sEqual compares two int64 slices element by element.
func AssertInt64sEqual(t *testing.T, name string, want, got []int64) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("%s: got %d elements %v, want %d elements %v", name, len(got), got, len(want), want)
		return
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("%s[%d]: got %d, want %d", name, i, got[i], want[i])
		}
	}
}
