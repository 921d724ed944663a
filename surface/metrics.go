package surface

import "github.com/lixenwraith/scrollkit/constants"

// Axis selects the scroll axis for derived computations
type Axis int

const (
	AxisY Axis = iota // Vertical (the common case)
	AxisX             // Horizontal
)

// Edge identifies a scroll bound
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// Metrics is a read-only geometry snapshot of a surface:
// current offset, total content extent, and visible extent per axis.
// Offsets are float64 so sub-cell smooth scrolling positions survive.
type Metrics struct {
	OffsetX, OffsetY   float64
	ContentW, ContentH float64
	VisibleW, VisibleH float64
}

// MaxOffset returns the maximum valid offset on the axis, clamped to >= 0.
// Content smaller than the viewport yields 0 (degenerate, both edges at-bound).
func (m Metrics) MaxOffset(axis Axis) float64 {
	var max float64
	if axis == AxisX {
		max = m.ContentW - m.VisibleW
	} else {
		max = m.ContentH - m.VisibleH
	}
	if max < 0 {
		return 0
	}
	return max
}

// Offset returns the current offset on the axis.
func (m Metrics) Offset(axis Axis) float64 {
	if axis == AxisX {
		return m.OffsetX
	}
	return m.OffsetY
}

// Progress returns scroll position as a fraction in [0, 1].
// A surface with no scrollable range reports 1: fully visible content
// is treated as fully scrolled, not a divide-by-zero.
func (m Metrics) Progress(axis Axis) float64 {
	max := m.MaxOffset(axis)
	if max == 0 {
		return 1
	}
	p := m.Offset(axis) / max
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// AtEdge returns true when the offset is within epsilon of the edge's bound.
// Pass epsilon <= 0 to use the default tolerance.
func (m Metrics) AtEdge(edge Edge, epsilon float64) bool {
	if epsilon <= 0 {
		epsilon = constants.EdgeEpsilon
	}
	var off, max float64
	switch edge {
	case EdgeLeft, EdgeRight:
		off, max = m.OffsetX, m.MaxOffset(AxisX)
	default:
		off, max = m.OffsetY, m.MaxOffset(AxisY)
	}
	switch edge {
	case EdgeTop, EdgeLeft:
		return off <= epsilon
	default:
		return off >= max-epsilon
	}
}

// CanScroll returns true if content exceeds the viewport on the axis.
func (m Metrics) CanScroll(axis Axis) bool {
	return m.MaxOffset(axis) > 0
}

// ClampOffset constrains an offset to the valid range on the axis.
func (m Metrics) ClampOffset(axis Axis, off float64) float64 {
	if off < 0 {
		return 0
	}
	if max := m.MaxOffset(axis); off > max {
		return max
	}
	return off
}
