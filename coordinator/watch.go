package coordinator

import (
	"github.com/lixenwraith/scrollkit/sched"
	"github.com/lixenwraith/scrollkit/surface"
)

// WatchConfig tunes per-watch derivation. Zero value is not useful;
// use DefaultWatchConfig and override fields.
type WatchConfig struct {
	// Axis is the axis used for direction derivation
	Axis surface.Axis

	// Sticky preserves the last non-none direction on zero-delta samples.
	// Raw mode (false) reports none whenever the offset did not move.
	Sticky bool
}

// DefaultWatchConfig returns vertical axis with sticky direction.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{Axis: surface.AxisY, Sticky: true}
}

// Watch is an active registration of one observer against one surface
// under a delivery policy. Obtained from Coordinator.Register; remains
// active until cancelled or its surface detaches.
//
// Direction history is per-watch state, so concurrent watches on one
// surface derive directions independently.
type Watch struct {
	id     uint64
	coord  *Coordinator
	surf   surface.Surface
	policy Policy
	fn     ObserverFunc
	cfg    WatchConfig

	// All fields below are guarded by coord.mu
	cancelled    bool
	paused       bool
	framePending bool
	frameReq     sched.RequestID
	timerPending bool
	timer        sched.Timer

	seq        uint64
	hasLast    bool
	lastOffset float64
	lastDir    Direction // Last non-none raw direction
}

// ID returns the watch's coordinator-unique identifier.
func (w *Watch) ID() uint64 { return w.id }

// Policy returns the delivery policy the watch was registered with.
func (w *Watch) Policy() Policy { return w.policy }

// Surface returns the bound surface.
func (w *Watch) Surface() surface.Surface { return w.surf }

// Cancel detaches the watch. Idempotent; equivalent to Coordinator.Cancel.
func (w *Watch) Cancel() { w.coord.Cancel(w) }

// Pause suppresses deliveries without detaching. Suppressed deliveries
// still consume sequence numbers, so the post-resume sample exposes the
// gap to the observer.
func (w *Watch) Pause() {
	w.coord.mu.Lock()
	w.paused = true
	w.coord.mu.Unlock()
}

// Resume re-enables deliveries.
func (w *Watch) Resume() {
	w.coord.mu.Lock()
	w.paused = false
	w.coord.mu.Unlock()
}

// Paused reports whether deliveries are currently suppressed.
func (w *Watch) Paused() bool {
	w.coord.mu.Lock()
	defer w.coord.mu.Unlock()
	return w.paused
}

// Active reports whether the watch can still receive deliveries.
func (w *Watch) Active() bool {
	w.coord.mu.Lock()
	defer w.coord.mu.Unlock()
	return !w.cancelled
}
