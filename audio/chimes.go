package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Chimes plays short procedural tones on session transitions. Audio is
// opt-in and strictly best-effort: a machine without a sound device
// degrades to silence, never to an error the caller has to handle.
type Chimes struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
}

// NewChimes creates a silent, uninitialized chime player.
func NewChimes() *Chimes {
	return &Chimes{}
}

// Enable initializes the speaker on first use. Returns the init error
// for logging, but the player stays usable either way.
func (c *Chimes) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			return err
		}
		c.initialized = true
	}
	c.enabled = true
	return nil
}

// Disable mutes the player without tearing down the speaker.
func (c *Chimes) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
}

// Enabled reports whether chimes will sound.
func (c *Chimes) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && c.initialized
}

// SessionStart plays a rising acknowledgement tone.
func (c *Chimes) SessionStart() {
	c.tone(660, 60*time.Millisecond)
}

// SessionStop plays a lower closing tone.
func (c *Chimes) SessionStop() {
	c.tone(440, 80*time.Millisecond)
}

// CategorySwitch plays a short click-like blip.
func (c *Chimes) CategorySwitch() {
	c.tone(880, 30*time.Millisecond)
}

func (c *Chimes) tone(freq float64, d time.Duration) {
	if !c.Enabled() {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}
