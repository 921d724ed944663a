package trigger

import (
	"github.com/lixenwraith/scrollkit/coordinator"
	"github.com/lixenwraith/scrollkit/surface"
)

// OnProgress returns an observer reporting scroll progress in [0, 1] on
// every delivered sample. A surface with no scrollable range reports 1.
func OnProgress(axis surface.Axis, fn func(progress float64)) coordinator.ObserverFunc {
	return func(s coordinator.Sample, _ coordinator.Direction) {
		if s.Terminal() {
			return
		}
		fn(s.Metrics.Progress(axis))
	}
}

// OnParallax returns an observer mapping the scroll offset to per-layer
// offsets: layer i moves at factor factors[i] of the scroll speed
// (0 = fixed backdrop, 1 = locked to content, 0.5 = classic half-speed
// parallax).
//
// The offsets slice is reused between calls; consumers must not retain it.
func OnParallax(axis surface.Axis, factors []float64, fn func(offsets []float64)) coordinator.ObserverFunc {
	offsets := make([]float64, len(factors))
	return func(s coordinator.Sample, _ coordinator.Direction) {
		if s.Terminal() {
			return
		}
		off := s.Metrics.Offset(axis)
		for i, f := range factors {
			offsets[i] = off * f
		}
		fn(offsets)
	}
}
