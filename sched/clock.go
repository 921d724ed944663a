package sched

import "time"

// Clock provides monotonic time and one-shot timers.
// Real-time operation uses SystemClock; tests use MockClock to drive
// interval windows deterministically.
type Clock interface {
	// Now returns the current time with monotonic clock reading
	Now() time.Time

	// AfterFunc schedules fn to run once after d elapses.
	// The returned timer can stop a not-yet-fired callback.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable one-shot timer handle.
type Timer interface {
	// Stop prevents the callback from firing.
	// Returns false if it already fired or was stopped.
	Stop() bool
}

// SystemClock is the real wall-clock implementation backed by the
// runtime's monotonic clock.
type SystemClock struct{}

// NewSystemClock creates the real time source.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (st systemTimer) Stop() bool {
	return st.t.Stop()
}
