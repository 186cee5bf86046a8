// Package sim provides the core tick-driven simulation engine for a registrar's office.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go: ServiceRequest, one student's arrival tick and service amount
//   - queue.go: RequestQueue, the FIFO line of students waiting for a window
//   - window.go: WindowPool, N service windows with idle accounting and left-to-right assignment
//   - simulator.go: the tick loop that frees windows and assigns waiting students
//   - metrics.go: raw wait/idle samples and their reduction into a Report
//
// # Architecture
//
// The engine is a single-threaded, deterministic pass over a fully known
// arrival schedule. Sub-packages hold everything around it:
//   - sim/workload/: arrival schedules (text and CSV formats) and queue construction
//   - sim/trace/: optional assignment/release decision trace
//
// # Tick semantics
//
// Each tick first releases windows whose request completes at that tick and
// credits an idle tick to every window that was already free (skipped on tick
// 0). It then dequeues arrived students while a window is free, always taking
// the lowest-indexed free window. Students with a zero service amount are
// dequeued and sampled but never occupy a window. The run ends once nobody is
// queued and every window is free.
package sim
