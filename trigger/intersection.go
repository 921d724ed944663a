package trigger

import (
	"github.com/lixenwraith/scrollkit/coordinator"
	"github.com/lixenwraith/scrollkit/surface"
)

// OnIntersection returns an edge-triggered observer reporting element
// visibility within the surface viewport, in the manner of an
// intersection observer. box supplies the element's bounding box in
// content coordinates on demand (the layout collaborator owns the
// actual geometry); ratio is the overlap fraction that counts as
// visible. fn(true) fires when the overlap crosses ratio upward,
// fn(false) when it crosses downward.
func OnIntersection(box func() surface.Rect, ratio float64, fn func(entered bool)) coordinator.ObserverFunc {
	var state edgeState
	return func(s coordinator.Sample, _ coordinator.Direction) {
		if s.Terminal() {
			return
		}
		overlap := box().OverlapRatio(s.Metrics.Viewport())
		inside := overlap >= ratio
		if ratio == 0 {
			// Any visible sliver counts
			inside = overlap > 0
		}
		if fired, entered := state.feed(inside); fired {
			fn(entered)
		}
	}
}
