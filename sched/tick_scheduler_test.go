package sched

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestTickSchedulerFires tests a request runs on the next tick
func TestTickSchedulerFires(t *testing.T) {
	ts := NewTickScheduler(2*time.Millisecond, nil)
	ts.Start()
	defer ts.Stop()

	done := make(chan struct{})
	ts.Request(func(time.Time) { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Request did not fire within 2s")
	}
}

// TestTickSchedulerCancel tests a cancelled request never fires
func TestTickSchedulerCancel(t *testing.T) {
	ts := NewTickScheduler(2*time.Millisecond, nil)

	var fired atomic.Bool
	id := ts.Request(func(time.Time) { fired.Store(true) })
	ts.Cancel(id)

	ts.Start()
	time.Sleep(20 * time.Millisecond)
	ts.Stop()

	if fired.Load() {
		t.Error("Cancelled request fired")
	}
}

// TestTickSchedulerStopIdempotent tests Stop can be called repeatedly
// and requests never fire after Stop returns
func TestTickSchedulerStopIdempotent(t *testing.T) {
	ts := NewTickScheduler(2*time.Millisecond, nil)
	ts.Start()
	ts.Stop()
	ts.Stop()

	var fired atomic.Bool
	ts.Request(func(time.Time) { fired.Store(true) })
	time.Sleep(20 * time.Millisecond)
	if fired.Load() {
		t.Error("Request fired after Stop")
	}
}

// TestTickSchedulerRestart tests a stopped scheduler can be started
// again and keeps serving requests
func TestTickSchedulerRestart(t *testing.T) {
	ts := NewTickScheduler(2*time.Millisecond, nil)

	for cycle := 0; cycle < 2; cycle++ {
		ts.Start()

		done := make(chan struct{})
		ts.Request(func(time.Time) { close(done) })

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("Request did not fire on cycle %d", cycle)
		}
		ts.Stop()
	}
}

// TestTickSchedulerTickCount tests the tick counter advances
func TestTickSchedulerTickCount(t *testing.T) {
	ts := NewTickScheduler(2*time.Millisecond, nil)
	ts.Start()

	deadline := time.Now().Add(2 * time.Second)
	for ts.TickCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	ts.Stop()

	if ts.TickCount() == 0 {
		t.Error("Expected tick counter to advance")
	}
}
