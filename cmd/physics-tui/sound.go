package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	hitTone    = 660
	hitLength  = 40 * time.Millisecond
)

// clicker plays a short tone for collisions. Without an audio device it stays silent.
type clicker struct {
	ready bool
}

func newClicker() (*clicker, error) {
	c := &clicker{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return c, err
	}
	c.ready = true
	return c, nil
}

func (c *clicker) hit() {
	if !c.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, hitTone)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(hitLength), sine))
}
