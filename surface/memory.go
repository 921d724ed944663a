package surface

import "sync"

// Memory is a self-contained mutable surface backed by nothing but its
// own geometry. It is the reference Surface implementation, used by the
// demo viewport and by tests as a scripted scroll source.
//
// Mutations clamp the offset to the valid range and invoke the OnChange
// hook, which callers typically wire to Coordinator.Notify. Safe for
// concurrent use.
type Memory struct {
	mu       sync.RWMutex
	id       ID
	m        Metrics
	detached bool

	// OnChange, when set, is called after every mutation that may have
	// moved the offset. It is invoked without the internal lock held.
	OnChange func(ID)
}

// NewMemory creates a memory surface with the given extents and a zero offset.
func NewMemory(id ID, contentW, contentH, visibleW, visibleH float64) *Memory {
	return &Memory{
		id: id,
		m: Metrics{
			ContentW: contentW, ContentH: contentH,
			VisibleW: visibleW, VisibleH: visibleH,
		},
	}
}

func (s *Memory) ID() ID { return s.id }

// Metrics returns the current geometry, or ErrDetached after Detach.
func (s *Memory) Metrics() (Metrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detached {
		return Metrics{}, ErrDetached
	}
	return s.m, nil
}

// Detach marks the surface as disposed. Further Metrics calls fail and
// active watches receive a terminal notification on their next delivery.
func (s *Memory) Detach() {
	s.mu.Lock()
	s.detached = true
	s.mu.Unlock()
	s.changed()
}

// ScrollBy adjusts both offsets by the given deltas, clamping each axis.
func (s *Memory) ScrollBy(dx, dy float64) {
	s.mu.Lock()
	s.m.OffsetX = s.m.ClampOffset(AxisX, s.m.OffsetX+dx)
	s.m.OffsetY = s.m.ClampOffset(AxisY, s.m.OffsetY+dy)
	s.mu.Unlock()
	s.changed()
}

// ScrollTo sets absolute offsets, clamping each axis.
func (s *Memory) ScrollTo(x, y float64) {
	s.mu.Lock()
	s.m.OffsetX = s.m.ClampOffset(AxisX, x)
	s.m.OffsetY = s.m.ClampOffset(AxisY, y)
	s.mu.Unlock()
	s.changed()
}

// Home scrolls to the origin.
func (s *Memory) Home() { s.ScrollTo(0, 0) }

// End scrolls to the maximum offset on both axes.
func (s *Memory) End() {
	s.mu.Lock()
	s.m.OffsetX = s.m.MaxOffset(AxisX)
	s.m.OffsetY = s.m.MaxOffset(AxisY)
	s.mu.Unlock()
	s.changed()
}

// SetExtents updates content and visible extents and reclamps the offset.
// Growing content (infinite-load append) and viewport resizes both land here.
func (s *Memory) SetExtents(contentW, contentH, visibleW, visibleH float64) {
	s.mu.Lock()
	s.m.ContentW, s.m.ContentH = contentW, contentH
	s.m.VisibleW, s.m.VisibleH = visibleW, visibleH
	s.m.OffsetX = s.m.ClampOffset(AxisX, s.m.OffsetX)
	s.m.OffsetY = s.m.ClampOffset(AxisY, s.m.OffsetY)
	s.mu.Unlock()
	s.changed()
}

func (s *Memory) changed() {
	if s.OnChange != nil {
		s.OnChange(s.id)
	}
}
