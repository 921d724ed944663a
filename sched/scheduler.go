package sched

import "time"

// RequestID identifies a pending frame callback request.
// The zero value is never issued.
type RequestID uint64

// FrameFunc is a callback invoked once on the next frame.
// The argument is the frame's timestamp from the scheduler's clock.
type FrameFunc func(now time.Time)

// FrameScheduler schedules callbacks to run before the next frame.
//
// Guarantees required by the coordinator:
//   - Callbacks for one frame run on a single goroutine, in request order
//   - Cancel prevents a not-yet-fired request from running
//   - A callback requesting another frame runs no earlier than the next frame
type FrameScheduler interface {
	Request(fn FrameFunc) RequestID
	Cancel(id RequestID)
}
