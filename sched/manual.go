package sched

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler is a FrameScheduler for tests: frames fire only when
// Step is called, so a test controls exactly what happens between two
// frame callbacks.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  RequestID
	order   []RequestID
	pending map[RequestID]FrameFunc
}

// NewManualScheduler creates a test scheduler with no pending requests.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[RequestID]FrameFunc)}
}

func (ms *ManualScheduler) Request(fn FrameFunc) RequestID {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.nextID++
	id := ms.nextID
	ms.pending[id] = fn
	ms.order = append(ms.order, id)
	return id
}

func (ms *ManualScheduler) Cancel(id RequestID) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.pending, id)
}

// Pending returns the number of not-yet-fired requests.
func (ms *ManualScheduler) Pending() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.pending)
}

// Step fires one frame: all currently pending callbacks run in request
// order with the given timestamp. Requests made during the step wait for
// the next Step, matching TickScheduler semantics.
func (ms *ManualScheduler) Step(now time.Time) {
	ms.mu.Lock()
	order := ms.order
	pending := ms.pending
	ms.order = nil
	ms.pending = make(map[RequestID]FrameFunc)
	ms.mu.Unlock()

	for _, id := range order {
		if fn, ok := pending[id]; ok {
			fn(now)
		}
	}
}

// MockClock is a controllable time source for testing. Advancing the
// clock fires due AfterFunc timers in deadline order, synchronously on
// the advancing goroutine.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*mockTimer
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// NewMockClock creates a mock clock at the given start time.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{currentTime: startTime}
}

// Now returns the current mocked time.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

// AfterFunc registers fn to fire when the clock advances past d.
func (c *MockClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{clock: c, deadline: c.currentTime.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, firing due timers in deadline
// order. A timer callback may register further timers; those fire too if
// their deadline falls within the advance.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.currentTime.Add(d)
	c.mu.Unlock()

	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	c.mu.Lock()
	c.currentTime = target
	c.mu.Unlock()
}

// popDue removes and returns the earliest unfired timer with deadline at
// or before target, also stepping the clock to that deadline so the
// callback observes consistent Now values.
func (c *MockClock) popDue(target time.Time) *mockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].deadline.Before(c.timers[j].deadline)
	})
	for i, t := range c.timers {
		if t.stopped || t.fired {
			continue
		}
		if t.deadline.After(target) {
			break
		}
		t.fired = true
		c.timers = append(c.timers[:i:i], c.timers[i+1:]...)
		if t.deadline.After(c.currentTime) {
			c.currentTime = t.deadline
		}
		return t
	}
	return nil
}
