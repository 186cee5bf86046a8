package workload

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-sim/registrar-sim/sim"
)

func TestParseSchedule_MultipleBatches(t *testing.T) {
	// GIVEN a text schedule with two windows and two batches spread over lines
	input := "2\n0 2\n4 4\n1 1 1\n"

	// WHEN parsed
	s, err := ParseSchedule(strings.NewReader(input))

	// THEN windows, batches and amounts are read in order
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumWindows)
	require.Len(t, s.Batches, 2)
	assert.Equal(t, Batch{ArrivalTick: 0, Amounts: []int64{4, 4}}, s.Batches[0])
	assert.Equal(t, Batch{ArrivalTick: 1, Amounts: []int64{1}}, s.Batches[1])
	assert.Equal(t, 3, s.NumStudents())
}

func TestParseSchedule_OnlyWindowCount_EmptySchedule(t *testing.T) {
	s, err := ParseSchedule(strings.NewReader("3"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumWindows)
	assert.Empty(t, s.Batches)
	assert.Equal(t, 0, s.NumStudents())
}

func TestParseSchedule_EmptyBatchAllowed(t *testing.T) {
	s, err := ParseSchedule(strings.NewReader("1 0 0 2 1 5"))
	require.NoError(t, err)
	require.Len(t, s.Batches, 2)
	assert.Empty(t, s.Batches[0].Amounts)
	assert.Equal(t, 1, s.NumStudents())
}

func TestParseSchedule_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"truncated amounts", "1 0 3 5 5", ErrTruncatedBatch},
		{"missing batch size", "1 0 1 4 7", ErrTruncatedBatch},
		{"out of order", "1 5 1 2 3 1 2", ErrOutOfOrder},
		{"negative amount", "1 0 1 -4", ErrNegativeValue},
		{"negative batch size", "1 0 -1", ErrNegativeValue},
		{"negative windows", "-1", ErrNegativeValue},
		{"negative arrival", "1 -2 1 3", ErrNegativeValue},
		{"huge batch size without amounts", "1 0 99999999999999", ErrTruncatedBatch},
		{"completion tick overflows", "1 1 1 9223372036854775807", ErrTickOverflow},
		{"summed service overflows", "1 0 2 9223372036854775000 9223372036854775000", ErrTickOverflow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSchedule(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSchedule_Validate_ServiceHorizonAtLimit(t *testing.T) {
	// GIVEN a schedule whose last window frees exactly one tick before MaxInt64
	s := &Schedule{NumWindows: 1, Batches: []Batch{
		{ArrivalTick: 10, Amounts: []int64{math.MaxInt64 - 11}},
	}}

	// WHEN validated
	// THEN it is accepted; one more tick of service is rejected
	require.NoError(t, s.Validate())
	s.Batches[0].Amounts[0]++
	assert.ErrorIs(t, s.Validate(), ErrTickOverflow)
}

func TestParseSchedule_MalformedInput(t *testing.T) {
	_, err := ParseSchedule(strings.NewReader(""))
	assert.Error(t, err, "empty input has no window count")

	_, err = ParseSchedule(strings.NewReader("2 0 1 five"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"five"`)
}

func TestSchedule_Requests_NumberedInInputOrder(t *testing.T) {
	s := &Schedule{NumWindows: 1, Batches: []Batch{
		{ArrivalTick: 0, Amounts: []int64{3, 0}},
		{ArrivalTick: 2, Amounts: []int64{1}},
	}}

	reqs := s.Requests()

	require.Len(t, reqs, 3)
	assert.Equal(t, sim.ServiceRequest{ID: 0, ArrivalTick: 0, ServiceAmount: 3}, *reqs[0])
	assert.Equal(t, sim.ServiceRequest{ID: 1, ArrivalTick: 0, ServiceAmount: 0}, *reqs[1])
	assert.Equal(t, sim.ServiceRequest{ID: 2, ArrivalTick: 2, ServiceAmount: 1}, *reqs[2])
}

func TestSchedule_Queue_FeedsSimulator(t *testing.T) {
	// GIVEN the two-window schedule where a third student waits for a window
	s, err := ParseSchedule(strings.NewReader("2 0 2 4 4 1 1 1"))
	require.NoError(t, err)

	// WHEN simulated from the schedule's queue
	simulator, err := sim.NewSimulator(sim.NewSimConfig(s.NumWindows), s.Queue())
	require.NoError(t, err)
	simulator.Run()

	// THEN the third student waited 3 ticks
	assert.Equal(t, []int64{0, 0, 3}, simulator.Metrics.WaitSamples)
	assert.Equal(t, int64(3), simulator.Report().Students.LongestWait)
}

func TestLoadSchedule_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrar.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n0 2 3 2\n"), 0644))

	s, err := LoadSchedule(path)

	require.NoError(t, err)
	assert.Equal(t, 1, s.NumWindows)
	assert.Equal(t, 2, s.NumStudents())
}

func TestLoadSchedule_MissingFile(t *testing.T) {
	_, err := LoadSchedule(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
