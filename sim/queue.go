// Implements the RequestQueue, which holds all students waiting for a window.
// Requests are enqueued in arrival order and consumed strictly from the front.

package sim

import (
	"fmt"
	"strings"
)

// RequestQueue represents a FIFO queue of service requests waiting for a window.
// The caller is responsible for enqueuing requests in non-decreasing arrival order;
// the queue never reorders.
type RequestQueue struct {
	queue []*ServiceRequest // FIFO queue of requests
	head  int               // index of the front element in queue
}

// NewRequestQueue returns a queue pre-filled with reqs, in order.
func NewRequestQueue(reqs ...*ServiceRequest) *RequestQueue {
	rq := &RequestQueue{}
	for _, r := range reqs {
		rq.Enqueue(r)
	}
	return rq
}

// Enqueue adds a request to the back of the queue.
func (rq *RequestQueue) Enqueue(r *ServiceRequest) {
	if r == nil {
		panic("Enqueue: request must not be nil")
	}
	rq.queue = append(rq.queue, r)
}

// Dequeue removes and returns the request at the front of the queue.
// Calling Dequeue on an empty queue is a programming error and panics.
func (rq *RequestQueue) Dequeue() *ServiceRequest {
	if rq.Empty() {
		panic("Dequeue: queue is empty")
	}
	r := rq.queue[rq.head]
	rq.queue[rq.head] = nil
	rq.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if rq.head > 32 && rq.head*2 >= len(rq.queue) {
		rq.queue = append([]*ServiceRequest(nil), rq.queue[rq.head:]...)
		rq.head = 0
	}
	return r
}

// Front returns the request at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *RequestQueue) Front() *ServiceRequest {
	if rq.Empty() {
		return nil
	}
	return rq.queue[rq.head]
}

// Len returns the number of requests in the queue.
func (rq *RequestQueue) Len() int {
	return len(rq.queue) - rq.head
}

// Empty reports whether no requests are waiting.
func (rq *RequestQueue) Empty() bool {
	return rq.Len() == 0
}

func (rq *RequestQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range rq.queue[rq.head:] {
		sb.WriteString(fmt.Sprint(val))
		if i < rq.Len()-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
