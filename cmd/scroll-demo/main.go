// Command scroll-demo is an interactive showcase of the scroll
// coordinator: a scrollable text viewport whose scrollbar, progress
// indicator, sticky header, back-to-top hint and infinite loading are
// all driven by coordinator watches instead of ad-hoc event handlers.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scrollkit/coordinator"
	"github.com/lixenwraith/scrollkit/surface"
	"github.com/lixenwraith/scrollkit/trigger"
)

var (
	debugFlag = flag.Bool("debug", false, "Enable debug logging to file")
	soundFlag = flag.Bool("sound", false, "Audible cue on back-to-top trigger")
	linesFlag = flag.Int("lines", 200, "Initial content line count")
)

const (
	frameInterval = 33 * time.Millisecond
	hintThreshold = 40 // Rows scrolled before the back-to-top hint shows
	loadChunk     = 100
)

// demoState is the observer-written, render-read state. Observers run
// on the coordinator's dispatch path; the render loop reads under the
// same lock.
type demoState struct {
	mu sync.Mutex

	sample    coordinator.Sample
	direction coordinator.Direction
	progress  float64
	headerOn  bool
	hintOn    bool
	loading   bool
}

func main() {
	// Panic recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nscroll-demo crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	width, height := screen.Size()

	cue := newCue(*soundFlag)

	// The document: one surface row per content line
	lines := generateLines(0, *linesFlag)
	doc := surface.NewMemory(1, 0, float64(len(lines)), 0, float64(contentHeight(height)))

	coord := coordinator.New()
	defer coord.Close()
	doc.OnChange = coord.Notify

	state := &demoState{headerOn: true}

	// Primary watch: frame-coalesced sampling feeds the render state
	if _, err := coord.Register(doc, coordinator.FrameCoalesced(), func(s coordinator.Sample, d coordinator.Direction) {
		state.mu.Lock()
		state.sample = s
		state.direction = d
		state.progress = s.Metrics.Progress(surface.AxisY)
		state.mu.Unlock()
	}); err != nil {
		log.Printf("register render watch: %v", err)
		return
	}

	// Sticky header: hide on sustained downward scroll, show on up
	if _, err := coord.Register(doc, coordinator.FrameCoalesced(),
		trigger.OnNavVisibility(8, func(visible bool) {
			state.mu.Lock()
			state.headerOn = visible
			state.mu.Unlock()
		})); err != nil {
		log.Printf("register header watch: %v", err)
		return
	}

	// Back-to-top hint: edge-triggered threshold with an audible cue
	if _, err := coord.Register(doc, coordinator.FrameCoalesced(),
		trigger.OnThreshold(surface.AxisY, hintThreshold, func(entered bool) {
			state.mu.Lock()
			state.hintOn = entered
			state.mu.Unlock()
			if entered {
				cue.play()
			}
		})); err != nil {
		log.Printf("register hint watch: %v", err)
		return
	}

	// Infinite load: append content near the bottom, throttled so a
	// held-down key cannot re-trigger mid-append
	var loadMu sync.Mutex
	nearEnd := trigger.OnNearEnd(surface.AxisY, 20, func() {
		state.mu.Lock()
		state.loading = true
		state.mu.Unlock()
	})
	if _, err := coord.Register(doc, coordinator.Interval(250*time.Millisecond), nearEnd.Observe); err != nil {
		log.Printf("register load watch: %v", err)
		return
	}

	// Input polling goroutine (reads terminal events, never blocks the
	// render loop)
	eventCh := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventCh:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				width, height = ev.Size()
				doc.SetExtents(0, float64(len(lines)), 0, float64(contentHeight(height)))
				screen.Sync()
			case *tcell.EventKey:
				if !handleKey(ev, doc, height) {
					return
				}
			}

		case <-ticker.C:
			// Complete a pending infinite-load append on the render
			// goroutine, then rearm for the grown range
			state.mu.Lock()
			loading := state.loading
			state.loading = false
			state.mu.Unlock()
			if loading {
				loadMu.Lock()
				lines = append(lines, generateLines(len(lines), loadChunk)...)
				doc.SetExtents(0, float64(len(lines)), 0, float64(contentHeight(height)))
				nearEnd.Rearm()
				loadMu.Unlock()
				log.Printf("loaded %d more lines, total %d", loadChunk, len(lines))
			}

			render(screen, state, lines, width, height)
		}
	}
}

// handleKey maps navigation keys to surface scrolls. Returns false on quit.
func handleKey(ev *tcell.EventKey, doc *surface.Memory, height int) bool {
	page := float64(contentHeight(height)) / 2
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		doc.ScrollBy(0, -1)
	case tcell.KeyDown:
		doc.ScrollBy(0, 1)
	case tcell.KeyPgUp:
		doc.ScrollBy(0, -page)
	case tcell.KeyPgDn:
		doc.ScrollBy(0, page)
	case tcell.KeyHome:
		doc.Home()
	case tcell.KeyEnd:
		doc.End()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			doc.ScrollBy(0, -1)
		case 'j':
			doc.ScrollBy(0, 1)
		case 'b':
			doc.ScrollBy(0, -page)
		case ' ':
			doc.ScrollBy(0, page)
		case 'g':
			doc.Home()
		case 'G':
			doc.End()
		case 't':
			// Back to top, the hint's promise
			doc.Home()
		}
	}
	return true
}

// contentHeight returns viewport rows excluding header and status bar.
func contentHeight(screenH int) int {
	h := screenH - 2
	if h < 1 {
		return 1
	}
	return h
}

func generateLines(start, count int) []string {
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := start + i
		out = append(out, fmt.Sprintf("%5d  The quick brown fox jumps over the lazy dog (%d)", n, n*n%9973))
	}
	return out
}
