package sim

import "fmt"

// FreeWindow is the BusyUntil sentinel of a window with no request assigned.
const FreeWindow int64 = -1

// Window is a single registrar service window.
type Window struct {
	ID        int   // Index in the pool; lower indices win ties
	IdleTicks int64 // Ticks spent free for the whole tick, excluding tick 0
	BusyUntil int64 // Tick at which the current request completes, or FreeWindow
	BusyTicks int64 // Total service ticks assigned to this window
	Served    int   // Number of requests this window has processed
}

// Free reports whether the window has no request assigned.
func (w *Window) Free() bool {
	return w.BusyUntil == FreeWindow
}

func (w *Window) String() string {
	if w.Free() {
		return fmt.Sprintf("window-%d(free, idle=%d)", w.ID, w.IdleTicks)
	}
	return fmt.Sprintf("window-%d(busy until %d, idle=%d)", w.ID, w.BusyUntil, w.IdleTicks)
}

// WindowPool holds a fixed number of identical windows indexed 0..N-1.
type WindowPool struct {
	windows []Window
}

// NewWindowPool creates n free windows.
func NewWindowPool(n int) *WindowPool {
	if n < 0 {
		panic(fmt.Sprintf("NewWindowPool: window count must be >= 0, got %d", n))
	}
	wp := &WindowPool{windows: make([]Window, n)}
	for i := range wp.windows {
		wp.windows[i] = Window{ID: i, BusyUntil: FreeWindow}
	}
	return wp
}

// Len returns the number of windows in the pool.
func (wp *WindowPool) Len() int {
	return len(wp.windows)
}

// Window returns the window at index i.
func (wp *WindowPool) Window(i int) *Window {
	return &wp.windows[i]
}

// BusyCount returns the number of windows with a request assigned.
func (wp *WindowPool) BusyCount() int {
	busy := 0
	for i := range wp.windows {
		if !wp.windows[i].Free() {
			busy++
		}
	}
	return busy
}

// ReleaseIfDue frees every window whose request completes at tick and credits
// one idle tick to every window that was already free. A window released at
// tick is not idle for that tick. Returns the indices of released windows.
func (wp *WindowPool) ReleaseIfDue(tick int64) []int {
	var released []int
	for i := range wp.windows {
		w := &wp.windows[i]
		switch {
		case w.Free():
			w.IdleTicks++
		case w.BusyUntil == tick:
			w.BusyUntil = FreeWindow
			released = append(released, i)
		}
	}
	return released
}

// Assign occupies the lowest-indexed free window until tick+amount and returns
// its index. The caller must guarantee that a free window exists and that
// amount is positive.
func (wp *WindowPool) Assign(tick, amount int64) int {
	if amount <= 0 {
		panic(fmt.Sprintf("Assign: service amount must be > 0, got %d", amount))
	}
	for i := range wp.windows {
		w := &wp.windows[i]
		if w.Free() {
			w.BusyUntil = tick + amount
			w.BusyTicks += amount
			w.Served++
			return i
		}
	}
	panic(fmt.Sprintf("Assign: no free window at tick %d", tick))
}

// IdleSamples returns each window's idle tick count, in index order.
func (wp *WindowPool) IdleSamples() []int64 {
	samples := make([]int64, len(wp.windows))
	for i := range wp.windows {
		samples[i] = wp.windows[i].IdleTicks
	}
	return samples
}
