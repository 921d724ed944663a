package coordinator

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/scrollkit/constants"
	"github.com/lixenwraith/scrollkit/surface"
)

// workKind discriminates dispatcher work items
type workKind uint8

const (
	workNotify workKind = iota // native scroll notification for a surface
	workFrame                  // scheduled frame delivery for one watch
	workTimer                  // interval window close for one watch
)

// workItem is one unit of dispatcher work. Notifications carry a surface
// ID and no payload beyond "something changed"; frame items carry the
// scheduler's frame timestamp.
type workItem struct {
	kind    workKind
	surface surface.ID
	watch   uint64
	at      time.Time
}

// workQueue is the dispatcher's intake: a fixed-size lock-free ring.
// Any goroutine may push; only the active dispatcher consumes. A
// per-slot published flag keeps the consumer from observing a slot
// whose write has not completed yet.
//
// When producers outrun the consumer the ring drops its oldest items.
// Notifications are payload-free change markers, so losing one costs
// latency at worst; fire items tolerate loss because the watch flags
// they complete are cleared before the item is pushed (see armFrame).
type workQueue struct {
	items     [constants.NotifyQueueSize]workItem
	published [constants.NotifyQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                          // Read index
	tail      atomic.Uint64                          // Write index
}

func newWorkQueue() *workQueue {
	return &workQueue{}
}

// push claims a slot via CAS on the tail, then marks it published.
// Safe from any goroutine.
func (q *workQueue) push(item workItem) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & constants.NotifyBufferMask

			q.items[idx] = item
			// Publish only once the slot write is complete
			q.published[idx].Store(true)

			// Ring full: push the read index past the slot just lost
			currentHead := q.head.Load()
			if nextTail-currentHead > constants.NotifyQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-constants.NotifyQueueSize)
			}
			return
		}
	}
}

// consume drains everything currently readable, in push order. Stops
// early at the first slot whose producer has claimed but not yet
// published; those items surface on the next call.
func (q *workQueue) consume() []workItem {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > constants.NotifyQueueSize {
			// Producers lapped the consumer; only the newest
			// ring-ful still exists
			maxAvailable = constants.NotifyQueueSize
			currentHead = currentTail - constants.NotifyQueueSize
		}

		result := make([]workItem, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & constants.NotifyBufferMask

			if !q.published[idx].Load() {
				break
			}

			result = append(result, q.items[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

func (q *workQueue) empty() bool {
	return q.tail.Load() == q.head.Load()
}
