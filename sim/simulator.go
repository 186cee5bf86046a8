// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/registrar-sim/registrar-sim/sim/trace"
)

// Simulator is the core object that holds the simulation clock, the window pool,
// the queue of waiting students and the tick loop.
// A Simulator runs exactly one simulation; it owns its queue and windows.
type Simulator struct {
	Clock int64
	// InService is the number of requests currently occupying a window.
	// It always equals Windows.BusyCount().
	InService int
	Windows   *WindowPool
	// Queue holds students that have not yet been dequeued, in arrival order.
	Queue   *RequestQueue
	Metrics *Metrics
	// Trace records assignment and release decisions; nil when tracing is off.
	Trace *trace.SimulationTrace

	config SimConfig
	ran    bool
}

// NewSimulator creates a simulator over the given queue. The queue must be
// ordered by non-decreasing arrival tick; the simulator takes ownership of it.
func NewSimulator(cfg SimConfig, queue *RequestQueue) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulator config: %w", err)
	}
	if queue == nil {
		queue = &RequestQueue{}
	}
	s := &Simulator{
		Clock:     0,
		InService: 0,
		Windows:   NewWindowPool(cfg.NumWindows),
		Queue:     queue,
		Metrics:   NewMetrics(queue.Len()),
		config:    cfg,
	}
	if cfg.TraceLevel == trace.TraceLevelDecisions {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel})
	}
	return s, nil
}

// Done reports whether there is neither work in flight nor anyone left to serve.
func (sim *Simulator) Done() bool {
	return sim.InService == 0 && sim.Queue.Empty()
}

// Run advances the clock one tick at a time until every student has been
// dequeued and every window is free. An empty queue performs zero ticks.
func (sim *Simulator) Run() {
	if sim.ran {
		logrus.Warnf("Run called twice on the same simulator; ignoring")
		return
	}
	sim.ran = true

	logrus.Infof("Starting simulation with %d windows and %d students", sim.Windows.Len(), sim.Queue.Len())
	if sim.Windows.Len() == 0 && !sim.Queue.Empty() {
		// Nobody can ever be served; ticking would never terminate.
		logrus.Warnf("No windows available; %d students left unserved", sim.Queue.Len())
		sim.Metrics.Unserved = sim.Queue.Len()
	} else {
		for !sim.Done() {
			sim.Step()
		}
	}

	sim.Metrics.TicksRun = sim.Clock
	sim.Metrics.IdleSamples = sim.Windows.IdleSamples()
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
}

// Step executes the tick at the current clock and advances the clock by one.
// Releases and idle accounting are skipped on tick 0.
func (sim *Simulator) Step() {
	now := sim.Clock

	if now > 0 {
		for _, idx := range sim.Windows.ReleaseIfDue(now) {
			sim.InService--
			logrus.Debugf("[tick %07d] window %d released", now, idx)
			if sim.Trace != nil {
				sim.Trace.RecordRelease(trace.ReleaseRecord{Tick: now, Window: idx})
			}
		}
	}

	// The InService guard guarantees Assign finds a free window.
	for sim.InService < sim.Windows.Len() && !sim.Queue.Empty() && sim.Queue.Front().ArrivalTick <= now {
		req := sim.Queue.Dequeue()
		wait := now - req.ArrivalTick
		sim.Metrics.RecordWait(wait)

		if req.ServiceAmount == 0 {
			sim.Metrics.Skipped++
			logrus.Debugf("[tick %07d] %s needs no service (waited %d)", now, req, wait)
			sim.recordAssignment(req, now, -1, wait)
			continue
		}

		idx := sim.Windows.Assign(now, req.ServiceAmount)
		sim.InService++
		sim.Metrics.Assigned++
		logrus.Debugf("[tick %07d] %s assigned to window %d (waited %d)", now, req, idx, wait)
		sim.recordAssignment(req, now, idx, wait)
	}

	sim.Clock++
}

// Report reduces the collected samples using the configured thresholds.
func (sim *Simulator) Report() *Report {
	return sim.Metrics.Report(sim.config.WaitThreshold, sim.config.IdleThreshold)
}

func (sim *Simulator) recordAssignment(req *ServiceRequest, tick int64, window int, wait int64) {
	if sim.Trace == nil {
		return
	}
	sim.Trace.RecordAssignment(trace.AssignmentRecord{
		RequestID: req.ID,
		Tick:      tick,
		Window:    window,
		Wait:      wait,
		Amount:    req.ServiceAmount,
	})
}
