// Package trigger provides derived observers built on coordinator
// samples: edge-triggered threshold and intersection machines, direction
// and progress reporters, and the parallax / infinite-load helpers.
//
// All constructors return plain coordinator observers; they hold their
// state privately and are safe under the coordinator's serialized
// delivery, not for concurrent invocation from elsewhere.
package trigger

// edgeState is the shared two-state machine behind threshold and
// intersection triggers: {below, above} (or {outside, inside}).
// The first sample seeds the state without firing; afterwards only a
// transition fires, never a sample that stays on the same side.
type edgeState struct {
	initialized bool
	above       bool
}

// feed advances the machine. fired is true only on a transition;
// entered distinguishes below→above from above→below.
func (e *edgeState) feed(above bool) (fired, entered bool) {
	if !e.initialized {
		e.initialized = true
		e.above = above
		return false, false
	}
	if above == e.above {
		return false, false
	}
	e.above = above
	return true, above
}
