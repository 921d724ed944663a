package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scrollkit/surface"
)

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHeader  = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite).Bold(true)
	styleStatus  = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	styleHint    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleTrack   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleThumb   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// render draws one frame from the observer-fed state.
func render(screen tcell.Screen, state *demoState, lines []string, width, height int) {
	state.mu.Lock()
	m := state.sample.Metrics
	seq := state.sample.Sequence
	dir := state.direction
	progress := state.progress
	headerOn := state.headerOn
	hintOn := state.hintOn
	state.mu.Unlock()

	screen.Clear()

	contentTop := 0
	if headerOn {
		putText(screen, 0, 0, width, " scrollkit demo — j/k scroll, space/b page, g/G ends, q quit ", styleHeader)
		contentTop = 1
	}

	// Content rows
	rows := contentHeight(height)
	offset := int(m.OffsetY)
	for row := 0; row < rows && contentTop+row < height-1; row++ {
		idx := offset + row
		if idx < 0 || idx >= len(lines) {
			break
		}
		putText(screen, 0, contentTop+row, width-1, lines[idx], styleDefault)
	}

	drawScrollbar(screen, width-1, contentTop, height-1-contentTop, m)

	// Status bar: progress, direction, sequence, hint
	status := fmt.Sprintf(" %s  dir=%s  seq=%d  %d lines ", progressLabel(progress, m), dir, seq, len(lines))
	putText(screen, 0, height-1, width, status, styleStatus)
	if hintOn {
		hint := " [t] back to top "
		putText(screen, width-len(hint)-1, height-1, len(hint), hint, styleHint)
	}

	screen.Show()
}

// progressLabel renders "Top", "Bot" or a percentage, compact style.
func progressLabel(progress float64, m surface.Metrics) string {
	switch {
	case !m.CanScroll(surface.AxisY) || m.AtEdge(surface.EdgeTop, 0):
		return "Top"
	case m.AtEdge(surface.EdgeBottom, 0):
		return "Bot"
	default:
		return fmt.Sprintf("%2d%%", int(progress*100))
	}
}

// drawScrollbar draws the vertical track with a proportional thumb.
func drawScrollbar(screen tcell.Screen, x, y, trackH int, m surface.Metrics) {
	if trackH < 1 {
		return
	}
	if !m.CanScroll(surface.AxisY) || trackH < 3 {
		for i := 0; i < trackH; i++ {
			screen.SetContent(x, y+i, '│', nil, styleTrack)
		}
		return
	}

	thumbH := int(m.VisibleH * float64(trackH) / m.ContentH)
	if thumbH < 1 {
		thumbH = 1
	}
	if thumbH > trackH {
		thumbH = trackH
	}

	thumbY := int(m.Progress(surface.AxisY) * float64(trackH-thumbH))
	if thumbY < 0 {
		thumbY = 0
	}
	if thumbY+thumbH > trackH {
		thumbY = trackH - thumbH
	}

	for i := 0; i < trackH; i++ {
		ch := '░'
		style := styleTrack
		if i >= thumbY && i < thumbY+thumbH {
			ch = '█'
			style = styleThumb
		}
		screen.SetContent(x, y+i, ch, nil, style)
	}
}

func putText(screen tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxW {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
