package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const cueSampleRate = beep.SampleRate(44100)

// cue plays a short sine tone when a trigger crossing fires.
// Initialization failure is non-fatal: the demo runs silent.
type cue struct {
	ok bool
}

func newCue(enabled bool) *cue {
	c := &cue{}
	if !enabled {
		return c
	}
	if err := speaker.Init(cueSampleRate, cueSampleRate.N(100*time.Millisecond)); err != nil {
		log.Printf("audio init failed, continuing without sound: %v", err)
		return c
	}
	c.ok = true
	return c
}

func (c *cue) play() {
	if !c.ok {
		return
	}
	sine, err := generators.SineTone(cueSampleRate, 880)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(cueSampleRate.N(50*time.Millisecond), sine))
}
