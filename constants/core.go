package constants

import "time"

// Scheduler Timing
const (
	// FrameInterval is the default tick scheduler frame interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond
)

// Notification Intake Limits
const (
	// NotifyQueueSize is the fixed capacity of the notification ring buffer
	NotifyQueueSize = 256

	// NotifyBufferMask is the bitmask for fast modulo operations (256 - 1)
	NotifyBufferMask = 255
)

// Geometry
const (
	// EdgeEpsilon is the default tolerance for at-bound detection.
	// Fractional offsets from sub-cell smooth scrolling land within
	// this distance of the true edge.
	EdgeEpsilon = 0.5
)
