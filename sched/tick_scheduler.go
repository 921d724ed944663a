package sched

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/scrollkit/constants"
)

// TickScheduler runs frame callbacks on a fixed tick without busy-wait.
// It is the production FrameScheduler: one loop goroutine wakes per
// interval, drains the requests queued since the previous tick, and runs
// them in request order.
//
// Requests made from within a callback land in the next tick's batch,
// never the current one.
type TickScheduler struct {
	clock    Clock
	interval time.Duration

	mu      sync.Mutex
	nextID  RequestID
	order   []RequestID
	pending map[RequestID]FrameFunc

	// Tick counter for debugging and metrics
	tickCount atomic.Uint64

	stopChan chan struct{}
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewTickScheduler creates a scheduler with the given frame interval.
// A non-positive interval falls back to the default frame rate.
func NewTickScheduler(interval time.Duration, clock Clock) *TickScheduler {
	if interval <= 0 {
		interval = constants.FrameInterval
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	return &TickScheduler{
		clock:    clock,
		interval: interval,
		pending:  make(map[RequestID]FrameFunc),
	}
}

// Start launches the tick loop. Calling Start on a running scheduler is
// a no-op; a stopped scheduler may be started again.
func (ts *TickScheduler) Start() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if !ts.running.CompareAndSwap(false, true) {
		return
	}
	// Fresh channel per run so an old loop's closed channel cannot
	// leak into a restart
	ts.stopChan = make(chan struct{})
	ts.wg.Add(1)
	go ts.run(ts.stopChan)
}

// Stop terminates the tick loop and waits for the in-flight tick to finish.
// Pending requests never fire after Stop returns. Idempotent.
func (ts *TickScheduler) Stop() {
	ts.mu.Lock()
	if ts.running.CompareAndSwap(true, false) {
		close(ts.stopChan)
	}
	ts.mu.Unlock()
	ts.wg.Wait()
}

// Request schedules fn for the next tick and returns its cancellation handle.
func (ts *TickScheduler) Request(fn FrameFunc) RequestID {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.nextID++
	id := ts.nextID
	ts.pending[id] = fn
	ts.order = append(ts.order, id)
	return id
}

// Cancel removes a not-yet-fired request. Unknown or fired IDs are ignored.
func (ts *TickScheduler) Cancel(id RequestID) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.pending, id)
}

// TickCount returns the number of completed ticks.
func (ts *TickScheduler) TickCount() uint64 {
	return ts.tickCount.Load()
}

func (ts *TickScheduler) run(stop <-chan struct{}) {
	defer ts.wg.Done()

	ticker := time.NewTicker(ts.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ts.runPending()
			ts.tickCount.Add(1)
		}
	}
}

// runPending drains the current batch and runs surviving callbacks in
// request order. Callbacks queued during the batch wait for the next tick.
func (ts *TickScheduler) runPending() {
	ts.mu.Lock()
	order := ts.order
	pending := ts.pending
	ts.order = nil
	ts.pending = make(map[RequestID]FrameFunc)
	ts.mu.Unlock()

	if len(order) == 0 {
		return
	}
	now := ts.clock.Now()
	for _, id := range order {
		if fn, ok := pending[id]; ok {
			fn(now)
		}
	}
}
