package sim

import (
	"testing"

	"github.com/registrar-sim/registrar-sim/sim/internal/testutil"
)

// queueFromBatches builds a request queue from golden batches, numbering
// students in input order.
func queueFromBatches(batches []testutil.GoldenBatch) *RequestQueue {
	rq := &RequestQueue{}
	id := 0
	for _, b := range batches {
		for _, amount := range b.Amounts {
			rq.Enqueue(NewServiceRequest(id, b.Arrival, amount))
			id++
		}
	}
	return rq
}

// mustNewSimulator is a test helper that calls NewSimulator and fails the test on error.
func mustNewSimulator(t *testing.T, cfg SimConfig, queue *RequestQueue) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, queue)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}
