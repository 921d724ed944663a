package trigger

import (
	"sync"

	"github.com/lixenwraith/scrollkit/coordinator"
	"github.com/lixenwraith/scrollkit/surface"
)

// NearEnd is the infinite-load trigger: it fires once when the remaining
// scrollable distance drops to the configured slack, then disarms until
// Rearm. The consumer appends content, grows the surface extents and
// calls Rearm; the next approach to the new end fires again.
//
// Without the disarm step the trigger would fire on every sample while
// the user sits near the bottom waiting for content to arrive.
type NearEnd struct {
	mu        sync.Mutex
	axis      surface.Axis
	remaining float64
	armed     bool
	fn        func()
}

// OnNearEnd creates an armed trigger. remaining is the distance from the
// end (in offset units) at which to fire. Use Observe as the watch
// observer.
func OnNearEnd(axis surface.Axis, remaining float64, fn func()) *NearEnd {
	return &NearEnd{axis: axis, remaining: remaining, armed: true, fn: fn}
}

// Observe is the coordinator.ObserverFunc for this trigger.
func (n *NearEnd) Observe(s coordinator.Sample, _ coordinator.Direction) {
	if s.Terminal() {
		return
	}
	n.mu.Lock()
	fire := false
	if n.armed {
		left := s.Metrics.MaxOffset(n.axis) - s.Metrics.Offset(n.axis)
		if left <= n.remaining {
			n.armed = false
			fire = true
		}
	}
	n.mu.Unlock()
	if fire {
		n.fn()
	}
}

// Rearm re-enables the trigger, typically after appended content grew
// the scrollable range.
func (n *NearEnd) Rearm() {
	n.mu.Lock()
	n.armed = true
	n.mu.Unlock()
}

// Armed reports whether the trigger can fire.
func (n *NearEnd) Armed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.armed
}
