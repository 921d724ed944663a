// Package coordinator multiplexes scroll observation for one or more
// scrollable surfaces: throttled callbacks, direction detection and
// viewport triggers without redundant per-notification work.
//
// The host feeds payload-free change notifications through Notify; the
// coordinator re-reads surface geometry itself at delivery time and
// fans samples out to registered watches under their delivery policies.
package coordinator

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/scrollkit/sched"
	"github.com/lixenwraith/scrollkit/surface"
)

// ErrorSink receives observer failures (panics recovered during
// delivery) and must not itself panic.
type ErrorSink func(err error)

// Config configures a Coordinator. All fields are optional.
type Config struct {
	// Scheduler drives frame-coalesced watches. When nil the
	// coordinator owns a TickScheduler at the default frame interval,
	// started on first use and stopped by Close.
	Scheduler sched.FrameScheduler

	// Clock drives interval windows and delivery timestamps.
	// Defaults to the system monotonic clock.
	Clock sched.Clock

	// ErrorSink receives isolated observer failures.
	// Defaults to the standard logger.
	ErrorSink ErrorSink
}

type surfaceEntry struct {
	s       surface.Surface
	watches []*Watch
}

// Coordinator owns watch registrations and the delivery pipeline.
//
// Concurrency model: Notify is safe from any goroutine (lock-free MPSC
// intake). One dispatcher at a time drains the work queue, so observer
// callbacks are always serialized, never concurrent. Reentrant
// notifications from inside an observer are absorbed by the queue and
// processed before the dispatch round ends.
type Coordinator struct {
	scheduler sched.FrameScheduler
	ownSched  *sched.TickScheduler // Owned scheduler, nil when injected
	clock     sched.Clock
	sink      ErrorSink

	queue       *workQueue
	dispatching atomic.Bool

	mu          sync.Mutex
	closed      bool
	ownStarted  bool
	nextWatchID uint64
	watches     map[uint64]*Watch
	surfaces    map[surface.ID]*surfaceEntry
}

// New creates a coordinator.
func New(cfg ...*Config) *Coordinator {
	var conf Config
	if len(cfg) > 0 && cfg[0] != nil {
		conf = *cfg[0]
	}
	c := &Coordinator{
		scheduler: conf.Scheduler,
		clock:     conf.Clock,
		sink:      conf.ErrorSink,
		queue:     newWorkQueue(),
		watches:   make(map[uint64]*Watch),
		surfaces:  make(map[surface.ID]*surfaceEntry),
	}
	if c.clock == nil {
		c.clock = sched.NewSystemClock()
	}
	if c.sink == nil {
		c.sink = func(err error) { log.Printf("scrollkit: %v", err) }
	}
	if c.scheduler == nil {
		c.ownSched = sched.NewTickScheduler(0, c.clock)
		c.scheduler = c.ownSched
	}
	return c
}

// Register binds an observer to a surface under a delivery policy and
// returns the active watch handle. The optional config controls the
// direction axis and stickiness; omitted it defaults to the vertical
// axis with sticky direction.
//
// Fails with ErrInvalidPolicy for a non-positive interval window.
func (c *Coordinator) Register(s surface.Surface, p Policy, fn ObserverFunc, cfg ...*WatchConfig) (*Watch, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("register: nil surface")
	}
	if fn == nil {
		return nil, fmt.Errorf("register: nil observer")
	}
	wcfg := DefaultWatchConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		wcfg = cfg[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("register: coordinator closed")
	}

	c.nextWatchID++
	w := &Watch{
		id:     c.nextWatchID,
		coord:  c,
		surf:   s,
		policy: p,
		fn:     fn,
		cfg:    *wcfg,
	}
	c.watches[w.id] = w

	entry := c.surfaces[s.ID()]
	if entry == nil {
		entry = &surfaceEntry{s: s}
		c.surfaces[s.ID()] = entry
	}
	entry.watches = append(entry.watches, w)

	// Owned scheduler spins up only when something needs frames
	if p.Kind == PolicyFrameCoalesced && c.ownSched != nil && !c.ownStarted {
		c.ownSched.Start()
		c.ownStarted = true
	}
	return w, nil
}

// Cancel detaches a watch. Idempotent: cancelling twice or cancelling
// an auto-cancelled watch is a no-op. Any already-scheduled delivery is
// suppressed by the liveness check at delivery time.
func (c *Coordinator) Cancel(w *Watch) {
	if w == nil {
		return
	}
	c.mu.Lock()
	c.removeLocked(w)
	c.mu.Unlock()
}

// Notify reports that a surface's offset may have changed. Payload-free:
// state is re-read from the surface at delivery time. Safe for
// concurrent producers; cheap enough to call on every native event.
//
// Surfaces with no registered watches are ignored.
func (c *Coordinator) Notify(id surface.ID) {
	c.queue.push(workItem{kind: workNotify, surface: id})
	c.kick()
}

// Close cancels every watch and stops the owned scheduler, if any.
// The coordinator accepts no registrations afterwards.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	for _, w := range c.watches {
		c.removeLocked(w)
	}
	own := c.ownSched
	started := c.ownStarted
	c.mu.Unlock()

	if own != nil && started {
		own.Stop()
	}
}

// --- Dispatch ---

// kick makes the calling goroutine the dispatcher if none is active.
// The dispatcher drains the queue to empty; anyone losing the CAS
// simply leaves their work for the active dispatcher. After releasing
// the flag the queue is re-checked to close the enqueue/release race.
func (c *Coordinator) kick() {
	for {
		if !c.dispatching.CompareAndSwap(false, true) {
			return
		}
		for {
			items := c.queue.consume()
			if len(items) == 0 {
				break
			}
			for _, item := range items {
				c.process(item)
			}
		}
		c.dispatching.Store(false)
		if c.queue.empty() {
			return
		}
	}
}

func (c *Coordinator) process(item workItem) {
	switch item.kind {
	case workNotify:
		c.processNotify(item.surface)
	case workFrame:
		c.processFire(item.watch, item.at)
	case workTimer:
		c.processFire(item.watch, time.Time{})
	}
}

// processNotify fans a native notification out to the surface's watches
// according to their policies: immediate delivery, frame arming, or
// interval-window arming. A watch with a pending frame or open window
// absorbs the notification.
func (c *Coordinator) processNotify(id surface.ID) {
	c.mu.Lock()
	entry := c.surfaces[id]
	if entry == nil {
		c.mu.Unlock()
		return
	}
	watches := append([]*Watch(nil), entry.watches...)
	c.mu.Unlock()

	for _, w := range watches {
		switch w.policy.Kind {
		case PolicyImmediate:
			c.deliver(w, time.Time{})
		case PolicyFrameCoalesced:
			c.armFrame(w)
		case PolicyInterval:
			c.armTimer(w)
		}
	}
}

// armFrame schedules exactly one frame delivery for the watch.
// Already-scheduled means the notification is absorbed.
//
// The pending flag clears when the frame fires, before the work item
// enters the intake ring. The ring may drop the item under sustained
// overflow; with the flag already clear that costs one delivery and
// the next notification re-arms, rather than absorbing notifications
// against a fire that will never arrive.
func (c *Coordinator) armFrame(w *Watch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w.cancelled || w.framePending {
		return
	}
	w.framePending = true
	id := w.id
	w.frameReq = c.scheduler.Request(func(now time.Time) {
		c.mu.Lock()
		w.framePending = false
		cancelled := w.cancelled
		c.mu.Unlock()
		if cancelled {
			return
		}
		c.queue.push(workItem{kind: workFrame, watch: id, at: now})
		c.kick()
	})
}

// armTimer opens the trailing-edge interval window if none is open.
// The window flag clears when the timer fires, same rationale as armFrame.
func (c *Coordinator) armTimer(w *Watch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w.cancelled || w.timerPending {
		return
	}
	w.timerPending = true
	id := w.id
	w.timer = c.clock.AfterFunc(w.policy.Every, func() {
		c.mu.Lock()
		w.timerPending = false
		w.timer = nil
		cancelled := w.cancelled
		c.mu.Unlock()
		if cancelled {
			return
		}
		c.queue.push(workItem{kind: workTimer, watch: id})
		c.kick()
	})
}

// processFire handles a scheduled frame or interval delivery.
// Liveness is checked at delivery time: a watch cancelled after
// scheduling produces no delivery.
func (c *Coordinator) processFire(watchID uint64, at time.Time) {
	c.mu.Lock()
	w := c.watches[watchID]
	c.mu.Unlock()
	if w == nil {
		return
	}
	c.deliver(w, at)
}

// deliver reads the surface's current state, builds the next sample and
// invokes the observer. The observer runs without the registry lock so
// it may cancel, pause, or register watches.
func (c *Coordinator) deliver(w *Watch, at time.Time) {
	c.mu.Lock()
	if w.cancelled {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// Geometry is read outside the registry lock; the provider is
	// external code. Liveness is re-checked when state is updated.
	m, err := w.surf.Metrics()

	c.mu.Lock()
	if w.cancelled {
		c.mu.Unlock()
		return
	}
	if err != nil {
		// Terminal notification, then auto-cancel. Delivered even to a
		// paused watch so the observer always learns about detachment.
		w.seq++
		s := Sample{
			Surface:  w.surf.ID(),
			Time:     c.clock.Now(),
			Sequence: w.seq,
			Err:      err,
		}
		c.removeLocked(w)
		c.mu.Unlock()
		c.invoke(w, s, DirectionNone)
		return
	}

	if at.IsZero() {
		at = c.clock.Now()
	}
	w.seq++

	off := m.Offset(w.cfg.Axis)
	var raw Direction
	if w.hasLast {
		switch delta := off - w.lastOffset; {
		case delta > 0 && w.cfg.Axis == surface.AxisY:
			raw = DirectionDown
		case delta > 0:
			raw = DirectionRight
		case delta < 0 && w.cfg.Axis == surface.AxisY:
			raw = DirectionUp
		case delta < 0:
			raw = DirectionLeft
		}
	}
	dir := raw
	if raw == DirectionNone && w.cfg.Sticky {
		dir = w.lastDir
	}
	if raw != DirectionNone {
		w.lastDir = raw
	}
	w.hasLast = true
	w.lastOffset = off

	s := Sample{
		Surface:  w.surf.ID(),
		Metrics:  m,
		Time:     at,
		Sequence: w.seq,
	}
	paused := w.paused
	c.mu.Unlock()

	// Paused: sequence advanced, sample dropped
	if paused {
		return
	}
	c.invoke(w, s, dir)
}

// invoke runs the observer with panic isolation: one observer's failure
// must not starve the other watches in the same batch.
func (c *Coordinator) invoke(w *Watch, s Sample, dir Direction) {
	defer func() {
		if r := recover(); r != nil {
			c.sink(fmt.Errorf("observer panic on watch %d (surface %d, seq %d): %v", w.id, s.Surface, s.Sequence, r))
		}
	}()
	w.fn(s, dir)
}

// removeLocked detaches a watch: cancels its pending frame request,
// stops its interval timer and drops the surface entry when the last
// watch on that surface goes. Caller holds c.mu.
func (c *Coordinator) removeLocked(w *Watch) {
	if w.cancelled {
		return
	}
	w.cancelled = true
	if w.framePending {
		c.scheduler.Cancel(w.frameReq)
		w.framePending = false
	}
	if w.timerPending && w.timer != nil {
		w.timer.Stop()
		w.timerPending = false
		w.timer = nil
	}
	delete(c.watches, w.id)

	entry := c.surfaces[w.surf.ID()]
	if entry == nil {
		return
	}
	for i, ww := range entry.watches {
		if ww == w {
			entry.watches = append(entry.watches[:i], entry.watches[i+1:]...)
			break
		}
	}
	if len(entry.watches) == 0 {
		delete(c.surfaces, w.surf.ID())
	}
}
