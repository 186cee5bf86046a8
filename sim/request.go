// Defines the ServiceRequest struct that models one student's visit to the registrar.
// A request is immutable once created; the simulator only reads it.

package sim

import "fmt"

// ServiceRequest is a single student's request for service at a window.
type ServiceRequest struct {
	ID            int   // Position of the request in the arrival schedule (0-based)
	ArrivalTick   int64 // Tick at which the student joins the queue
	ServiceAmount int64 // Ticks a window stays occupied; 0 means served instantly
}

// NewServiceRequest creates a request arriving at the given tick.
func NewServiceRequest(id int, arrivalTick, serviceAmount int64) *ServiceRequest {
	return &ServiceRequest{
		ID:            id,
		ArrivalTick:   arrivalTick,
		ServiceAmount: serviceAmount,
	}
}

// String gives a compact, log-friendly representation.
func (r *ServiceRequest) String() string {
	return fmt.Sprintf("req-%d(arrive=%d, amount=%d)", r.ID, r.ArrivalTick, r.ServiceAmount)
}
