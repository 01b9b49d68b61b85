package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"tankarena/game"
)

const sampleRate = beep.SampleRate(44100)

// Audio plays short tones for gameplay events. A zero Audio is silent.
type Audio struct {
	mu          sync.Mutex
	initialized bool
	volume      float64
}

// NewAudio creates a silent player; call Init to open the speaker
func NewAudio(volume float64) *Audio {
	return &Audio{volume: volume}
}

// Init opens the speaker. The game runs without sound when it fails.
func (a *Audio) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	a.initialized = true
	return nil
}

// Play queues the cue of every event that has one
func (a *Audio) Play(events []game.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	for _, e := range events {
		if s := cueFor(e, a.volume); s != nil {
			speaker.Play(s)
		}
	}
}

// Close releases the speaker
func (a *Audio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	speaker.Close()
	a.initialized = false
}

// cueFor returns the tone for an event, nil when the event is silent
func cueFor(e game.Event, volume float64) beep.Streamer {
	switch e.Type {
	case game.EventEnemyKilled:
		return tone(880, 60*time.Millisecond, volume)
	case game.EventPickupCollected:
		return tone(660, 80*time.Millisecond, volume)
	case game.EventPlayerHit:
		return tone(140, 120*time.Millisecond, volume)
	case game.EventWaveCompleted:
		return beep.Seq(
			tone(523.25, 90*time.Millisecond, volume),
			tone(659.25, 90*time.Millisecond, volume),
			tone(783.99, 140*time.Millisecond, volume),
		)
	case game.EventGameOver:
		return beep.Seq(
			tone(392, 150*time.Millisecond, volume),
			tone(262, 300*time.Millisecond, volume),
		)
	default:
		return nil
	}
}

// tone returns a sine wave of the given pitch and length
func tone(freq float64, d time.Duration, volume float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	s := beep.Take(sampleRate.N(d), sine)
	// math.Log2(0) is -Inf
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}
