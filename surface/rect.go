package surface

// Rect is an axis-aligned box in surface content coordinates.
// Used by intersection triggers to compute element/viewport overlap.
type Rect struct {
	X, Y, W, H float64
}

// Viewport returns the currently visible box of the surface in
// content coordinates.
func (m Metrics) Viewport() Rect {
	return Rect{X: m.OffsetX, Y: m.OffsetY, W: m.VisibleW, H: m.VisibleH}
}

// Area returns the rectangle's area, 0 for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlapping region of two rectangles.
// A non-overlapping pair yields a zero-area rectangle.
func (r Rect) Intersect(o Rect) Rect {
	x1 := maxf(r.X, o.X)
	y1 := maxf(r.Y, o.Y)
	x2 := minf(r.X+r.W, o.X+o.W)
	y2 := minf(r.Y+r.H, o.Y+o.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// OverlapRatio returns the fraction of r covered by o, in [0, 1],
// computed per axis. An axis on which o has no extent is unconstrained:
// a surface tracking a single axis reports a zero-extent viewport on
// the other, and overlap then reduces to the tracked axis alone. An
// axis on which r has no extent counts as covered when r's position
// lies within o's span, so point-like elements still trigger cleanly.
func (r Rect) OverlapRatio(o Rect) float64 {
	return axisCoverage(r.X, r.W, o.X, o.W) * axisCoverage(r.Y, r.H, o.Y, o.H)
}

// axisCoverage returns the fraction of the span [p, p+pl) inside
// [q, q+ql) on one axis. A zero-length q span constrains nothing; a
// zero-length p span is covered iff its position lies within q's span.
func axisCoverage(p, pl, q, ql float64) float64 {
	if ql <= 0 {
		return 1
	}
	if pl <= 0 {
		if p >= q && p <= q+ql {
			return 1
		}
		return 0
	}
	lo := maxf(p, q)
	hi := minf(p+pl, q+ql)
	if hi <= lo {
		return 0
	}
	return (hi - lo) / pl
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
