package sim

import (
	"testing"
)

func TestRequestQueue_Front_NonEmpty_ReturnsHead(t *testing.T) {
	// GIVEN a queue with requests [A, B]
	rq := &RequestQueue{}
	reqA := NewServiceRequest(0, 0, 3)
	reqB := NewServiceRequest(1, 0, 2)
	rq.Enqueue(reqA)
	rq.Enqueue(reqB)

	// WHEN Front() is called
	got := rq.Front()

	// THEN it returns the head without removing it
	if got != reqA {
		t.Errorf("Front: got request %v, want %v", got, reqA)
	}
	if rq.Len() != 2 {
		t.Errorf("Front modified queue length: got %d, want 2", rq.Len())
	}
}

func TestRequestQueue_Front_Empty_ReturnsNil(t *testing.T) {
	rq := &RequestQueue{}
	if got := rq.Front(); got != nil {
		t.Errorf("Front on empty queue: got %v, want nil", got)
	}
	if !rq.Empty() {
		t.Error("new queue should be empty")
	}
}

func TestRequestQueue_Dequeue_PreservesFIFOOrder(t *testing.T) {
	// GIVEN a queue filled with 100 requests
	rq := &RequestQueue{}
	for i := 0; i < 100; i++ {
		rq.Enqueue(NewServiceRequest(i, int64(i/10), 1))
	}

	// WHEN all requests are dequeued, interleaved with new arrivals
	ids := make([]int, 0, 110)
	for i := 0; i < 50; i++ {
		ids = append(ids, rq.Dequeue().ID)
	}
	for i := 100; i < 110; i++ {
		rq.Enqueue(NewServiceRequest(i, 10, 1))
	}
	for !rq.Empty() {
		ids = append(ids, rq.Dequeue().ID)
	}

	// THEN they come out in insertion order
	if len(ids) != 110 {
		t.Fatalf("dequeued %d requests, want 110", len(ids))
	}
	for i, id := range ids {
		if id != i {
			t.Errorf("order[%d]: got %d, want %d", i, id, i)
		}
	}
	if rq.Len() != 0 {
		t.Errorf("Len after draining: got %d, want 0", rq.Len())
	}
}

func TestRequestQueue_Dequeue_Empty_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when dequeuing an empty queue")
		}
	}()
	rq := &RequestQueue{}
	rq.Dequeue()
}

func TestRequestQueue_Enqueue_Nil_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when enqueuing nil")
		}
	}()
	rq := &RequestQueue{}
	rq.Enqueue(nil)
}

func TestNewRequestQueue_PreFilled(t *testing.T) {
	rq := NewRequestQueue(NewServiceRequest(0, 0, 1), NewServiceRequest(1, 2, 0))
	if rq.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", rq.Len())
	}
	if rq.Front().ID != 0 {
		t.Errorf("Front: got %d, want 0", rq.Front().ID)
	}
}

func TestRequestQueue_String(t *testing.T) {
	rq := NewRequestQueue(NewServiceRequest(0, 0, 1), NewServiceRequest(1, 2, 0))
	rq.Dequeue()
	want := "[req-1(arrive=2, amount=0)]"
	if got := rq.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}
