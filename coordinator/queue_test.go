package coordinator

import (
	"sync"
	"testing"
)

// TestWorkQueueBasic tests push and consume in FIFO order
func TestWorkQueueBasic(t *testing.T) {
	q := newWorkQueue()

	q.push(workItem{kind: workNotify, surface: 1})
	q.push(workItem{kind: workFrame, watch: 2})
	q.push(workItem{kind: workTimer, watch: 3})

	items := q.consume()
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].kind != workNotify || items[0].surface != 1 {
		t.Errorf("Item 0 mismatch: %+v", items[0])
	}
	if items[1].kind != workFrame || items[1].watch != 2 {
		t.Errorf("Item 1 mismatch: %+v", items[1])
	}
	if items[2].kind != workTimer || items[2].watch != 3 {
		t.Errorf("Item 2 mismatch: %+v", items[2])
	}

	if got := q.consume(); len(got) != 0 {
		t.Errorf("Expected empty queue on second consume, got %d", len(got))
	}
	if !q.empty() {
		t.Error("Expected queue to report empty")
	}
}

// TestWorkQueueConcurrentProducers tests lock-free pushes from multiple
// goroutines with a single consumer
func TestWorkQueueConcurrentProducers(t *testing.T) {
	q := newWorkQueue()

	const producers = 10
	const perProducer = 20

	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.push(workItem{kind: workNotify, surface: 1, watch: uint64(id*100 + j)})
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for {
		items := q.consume()
		if len(items) == 0 {
			break
		}
		total += len(items)
	}
	if total != producers*perProducer {
		t.Errorf("Expected %d items, got %d", producers*perProducer, total)
	}
}
