package renderer

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const chimeSampleRate = beep.SampleRate(44100)

// Chime plays short tones for simulation events. A nil Chime is silent.
type Chime struct{}

// NewChime opens the default audio device.
func NewChime() (*Chime, error) {
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &Chime{}, nil
}

// Play plays a tone of freq Hz for d.
func (c *Chime) Play(freq float64, d time.Duration) {
	if c == nil {
		return
	}
	sine, err := generators.SineTone(chimeSampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(chimeSampleRate.N(d), sine))
}

// Kill plays the predator kill tone.
func (c *Chime) Kill() {
	c.Play(880, 50*time.Millisecond)
}

// Extinction plays the end-of-run tone.
func (c *Chime) Extinction() {
	c.Play(220, 300*time.Millisecond)
}

// Close releases the audio device.
func (c *Chime) Close() {
	if c == nil {
		return
	}
	speaker.Close()
}
