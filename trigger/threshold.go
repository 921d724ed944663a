package trigger

import (
	"github.com/lixenwraith/scrollkit/coordinator"
	"github.com/lixenwraith/scrollkit/surface"
)

// OnThreshold returns an edge-triggered observer that fires exactly once
// per crossing of the offset threshold on the axis: fn(true) when the
// offset crosses upward after being below, fn(false) when it drops back.
// Samples that stay past the threshold do not re-fire.
//
// This is the back-to-top pattern: register with threshold equal to the
// scroll depth at which the shortcut should appear.
func OnThreshold(axis surface.Axis, threshold float64, fn func(entered bool)) coordinator.ObserverFunc {
	var state edgeState
	return func(s coordinator.Sample, _ coordinator.Direction) {
		if s.Terminal() {
			return
		}
		if fired, entered := state.feed(s.Metrics.Offset(axis) >= threshold); fired {
			fn(entered)
		}
	}
}
