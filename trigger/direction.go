package trigger

import (
	"github.com/lixenwraith/scrollkit/coordinator"
	"github.com/lixenwraith/scrollkit/surface"
)

// OnDirection returns an observer that reports the derived direction
// only when it changes, not on every sample. The initial reported state
// is none, so the first moving sample fires.
func OnDirection(fn func(dir coordinator.Direction)) coordinator.ObserverFunc {
	last := coordinator.DirectionNone
	return func(s coordinator.Sample, dir coordinator.Direction) {
		if s.Terminal() {
			return
		}
		if dir != last {
			last = dir
			fn(dir)
		}
	}
}

// OnNavVisibility returns the sticky-nav observer: hide on sustained
// downward scrolling, show again on any upward movement or at the top.
// hysteresis is the downward travel (in offset units) tolerated before
// hiding, so small jitters do not flicker the nav.
//
// fn receives the desired visibility and fires only on changes;
// visibility starts true.
func OnNavVisibility(hysteresis float64, fn func(visible bool)) coordinator.ObserverFunc {
	visible := true
	var downTravel float64
	var lastOffset float64
	var hasLast bool
	return func(s coordinator.Sample, dir coordinator.Direction) {
		if s.Terminal() {
			return
		}
		off := s.Metrics.Offset(surface.AxisY)
		delta := 0.0
		if hasLast {
			delta = off - lastOffset
		}
		hasLast = true
		lastOffset = off

		show := visible
		switch {
		case s.Metrics.AtEdge(surface.EdgeTop, 0):
			show = true
			downTravel = 0
		case delta < 0:
			show = true
			downTravel = 0
		case delta > 0:
			downTravel += delta
			if downTravel > hysteresis {
				show = false
			}
		}
		if show != visible {
			visible = show
			fn(show)
		}
	}
}
