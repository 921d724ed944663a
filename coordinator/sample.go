package coordinator

import (
	"time"

	"github.com/lixenwraith/scrollkit/surface"
)

// Sample is an immutable snapshot delivered to a watch observer.
//
// Metrics holds the surface geometry as read at delivery time, not at
// notification time: coalescing policies intentionally collapse multiple
// notifications into one delivery carrying the latest state.
//
// Sequence increases by exactly 1 per delivered sample per watch, never
// decreases, and never skips except across a pause/resume cycle (paused
// watches consume sequence numbers for suppressed deliveries, which is
// how a consumer can detect the pause gap).
type Sample struct {
	Surface  surface.ID
	Metrics  surface.Metrics
	Time     time.Time // Monotonic delivery timestamp
	Sequence uint64

	// Err is non-nil only on the terminal notification delivered when
	// the bound surface detaches; the watch is auto-cancelled after it.
	Err error
}

// Terminal reports whether this is the final sample for the watch.
func (s Sample) Terminal() bool {
	return s.Err != nil
}

// Direction is the scroll movement between the two most recent delivered
// samples on the watch's configured axis.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// ObserverFunc receives delivered samples with the derived direction.
// Observers run serialized on the coordinator's dispatch path and must
// not block.
type ObserverFunc func(s Sample, dir Direction)
