package trigger

import (
	"testing"
	"time"

	"github.com/lixenwraith/scrollkit/coordinator"
	"github.com/lixenwraith/scrollkit/sched"
	"github.com/lixenwraith/scrollkit/surface"
)

// sampleAt builds a vertical-axis sample for direct observer feeding
func sampleAt(y float64, seq uint64) coordinator.Sample {
	return coordinator.Sample{
		Surface:  1,
		Metrics:  surface.Metrics{OffsetY: y, ContentH: 1100, VisibleH: 100},
		Sequence: seq,
	}
}

// TestThresholdEdgeTriggered tests enter fires exactly once per upward
// crossing and exit once per downward crossing
func TestThresholdEdgeTriggered(t *testing.T) {
	var events []bool
	obs := OnThreshold(surface.AxisY, 300, func(entered bool) {
		events = append(events, entered)
	})

	seq := uint64(0)
	feed := func(y float64) {
		seq++
		obs(sampleAt(y, seq), coordinator.DirectionNone)
	}

	// Scripted scenario: enter at first y=300, no re-fire while held,
	// exit when dropping below
	for _, y := range []float64{0, 50, 120, 300, 300, 150} {
		feed(y)
	}

	if len(events) != 2 {
		t.Fatalf("Expected [enter exit], got %d events: %v", len(events), events)
	}
	if !events[0] || events[1] {
		t.Errorf("Expected enter then exit, got %v", events)
	}
}

// TestThresholdInitialStateAbove tests the first sample seeds state
// without firing, even past the threshold
func TestThresholdInitialStateAbove(t *testing.T) {
	var events []bool
	obs := OnThreshold(surface.AxisY, 100, func(entered bool) {
		events = append(events, entered)
	})

	obs(sampleAt(500, 1), coordinator.DirectionNone) // starts above: no fire
	obs(sampleAt(600, 2), coordinator.DirectionNone) // still above: no fire
	obs(sampleAt(50, 3), coordinator.DirectionNone)  // drops below: exit

	if len(events) != 1 || events[0] {
		t.Errorf("Expected single exit event, got %v", events)
	}
}

// TestThresholdPipeline tests the back-to-top trigger through the full
// coordinator with frame-coalesced sampling
func TestThresholdPipeline(t *testing.T) {
	ms := sched.NewManualScheduler()
	c := coordinator.New(&coordinator.Config{Scheduler: ms})
	defer c.Close()

	s := surface.NewMemory(1, 0, 1100, 0, 100)
	s.OnChange = c.Notify

	var events []bool
	_, err := c.Register(s, coordinator.FrameCoalesced(),
		OnThreshold(surface.AxisY, 300, func(entered bool) {
			events = append(events, entered)
		}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, y := range []float64{0, 50, 120, 300, 300, 150} {
		s.ScrollTo(0, y)
		ms.Step(time.Now())
	}

	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("Expected enter at y=300 and exit at y=150, got %v", events)
	}
}

// TestIntersectionEnterExit tests the visibility state machine over a
// box scrolling through the viewport
func TestIntersectionEnterExit(t *testing.T) {
	box := surface.Rect{X: 0, Y: 500, W: 100, H: 100}
	var events []bool
	obs := OnIntersection(func() surface.Rect { return box }, 0.5, func(entered bool) {
		events = append(events, entered)
	})

	// Viewport is 100 tall; box at y=500
	offsets := []float64{0, 380, 450, 470, 380, 0}
	// Overlap:        0    0   0.5  0.7  0    0
	for i, y := range offsets {
		obs(sampleAt(y, uint64(i+1)), coordinator.DirectionNone)
	}

	if len(events) != 2 {
		t.Fatalf("Expected [enter exit], got %v", events)
	}
	if !events[0] || events[1] {
		t.Errorf("Expected enter then exit, got %v", events)
	}
}

// TestIntersectionZeroRatio tests any visible sliver counts at ratio 0
func TestIntersectionZeroRatio(t *testing.T) {
	box := surface.Rect{X: 0, Y: 500, W: 100, H: 100}
	var events []bool
	obs := OnIntersection(func() surface.Rect { return box }, 0, func(entered bool) {
		events = append(events, entered)
	})

	obs(sampleAt(0, 1), coordinator.DirectionNone)   // no overlap
	obs(sampleAt(410, 2), coordinator.DirectionNone) // 10 units visible
	if len(events) != 1 || !events[0] {
		t.Errorf("Expected enter on first sliver, got %v", events)
	}
}

// TestOnDirectionFiresOnChange tests direction reporting only on change
func TestOnDirectionFiresOnChange(t *testing.T) {
	var got []coordinator.Direction
	obs := OnDirection(func(d coordinator.Direction) { got = append(got, d) })

	dirs := []coordinator.Direction{
		coordinator.DirectionNone,
		coordinator.DirectionDown,
		coordinator.DirectionDown,
		coordinator.DirectionUp,
		coordinator.DirectionUp,
	}
	for i, d := range dirs {
		obs(sampleAt(float64(i), uint64(i+1)), d)
	}

	want := []coordinator.Direction{coordinator.DirectionDown, coordinator.DirectionUp}
	if len(got) != len(want) {
		t.Fatalf("Expected %d direction changes, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Change %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

// TestOnProgress tests per-sample progress reporting
func TestOnProgress(t *testing.T) {
	var got []float64
	obs := OnProgress(surface.AxisY, func(p float64) { got = append(got, p) })

	for i, y := range []float64{0, 250, 500, 1000} {
		obs(sampleAt(y, uint64(i+1)), coordinator.DirectionNone)
	}

	want := []float64{0, 0.25, 0.5, 1.0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sample %d: expected progress %v, got %v", i, want[i], got[i])
		}
	}
}

// TestOnParallax tests per-layer offset mapping
func TestOnParallax(t *testing.T) {
	var last []float64
	obs := OnParallax(surface.AxisY, []float64{0, 0.5, 1}, func(offsets []float64) {
		last = append(last[:0], offsets...)
	})

	obs(sampleAt(200, 1), coordinator.DirectionNone)

	if len(last) != 3 || last[0] != 0 || last[1] != 100 || last[2] != 200 {
		t.Errorf("Expected layer offsets [0 100 200], got %v", last)
	}
}

// TestNearEndRearm tests the infinite-load trigger disarms after firing
// and rearms for the grown range
func TestNearEndRearm(t *testing.T) {
	fires := 0
	n := OnNearEnd(surface.AxisY, 100, func() { fires++ })

	// maxOffset 1000; remaining = 1000 - offset
	n.Observe(sampleAt(0, 1), coordinator.DirectionNone)
	n.Observe(sampleAt(850, 2), coordinator.DirectionNone)
	if fires != 0 {
		t.Fatalf("Expected no fire at 150 remaining, got %d", fires)
	}

	n.Observe(sampleAt(920, 3), coordinator.DirectionNone)
	if fires != 1 {
		t.Fatalf("Expected fire at 80 remaining, got %d", fires)
	}
	if n.Armed() {
		t.Error("Expected trigger disarmed after firing")
	}

	// Still near the end: no re-fire while disarmed
	n.Observe(sampleAt(950, 4), coordinator.DirectionNone)
	if fires != 1 {
		t.Fatalf("Expected no re-fire while disarmed, got %d", fires)
	}

	// Content grew, consumer rearms; trigger waits for the new end
	n.Rearm()
	grown := coordinator.Sample{
		Surface:  1,
		Metrics:  surface.Metrics{OffsetY: 950, ContentH: 2100, VisibleH: 100},
		Sequence: 5,
	}
	n.Observe(grown, coordinator.DirectionNone)
	if fires != 1 {
		t.Fatalf("Expected no fire far from new end, got %d", fires)
	}

	grown.Metrics.OffsetY = 1950
	grown.Sequence = 6
	n.Observe(grown, coordinator.DirectionNone)
	if fires != 2 {
		t.Errorf("Expected fire near new end after rearm, got %d", fires)
	}
}

// TestNavVisibility tests hide-on-scroll-down with hysteresis and
// show-on-scroll-up
func TestNavVisibility(t *testing.T) {
	var events []bool
	obs := OnNavVisibility(50, func(visible bool) { events = append(events, visible) })

	seq := uint64(0)
	feed := func(y float64) {
		seq++
		obs(sampleAt(y, seq), coordinator.DirectionNone)
	}

	feed(0)   // at top, visible (no event, starts visible)
	feed(30)  // down 30, within hysteresis
	feed(60)  // down 60 total, past hysteresis: hide
	feed(200) // still down: no event
	feed(180) // up: show
	feed(0)   // back at top: no event, already visible

	want := []bool{false, true}
	if len(events) != len(want) {
		t.Fatalf("Expected %d visibility changes, got %v", len(want), events)
	}
	if events[0] != false || events[1] != true {
		t.Errorf("Expected hide then show, got %v", events)
	}
}

// TestTriggersIgnoreTerminalSamples tests derived observers skip the
// detach notification
func TestTriggersIgnoreTerminalSamples(t *testing.T) {
	fired := false
	obs := OnThreshold(surface.AxisY, 10, func(bool) { fired = true })

	obs(sampleAt(0, 1), coordinator.DirectionNone)
	terminal := coordinator.Sample{Surface: 1, Sequence: 2, Err: surface.ErrDetached}
	obs(terminal, coordinator.DirectionNone)

	if fired {
		t.Error("Terminal sample advanced the trigger state machine")
	}
}
