package frontend

import "time"

// Clock measures the wall-clock time between frames
type Clock struct {
	last     time.Time
	maxDelta float64
	now      func() time.Time
}

// NewClock creates a clock whose deltas never exceed maxDelta seconds
func NewClock(maxDelta float64) *Clock {
	c := &Clock{maxDelta: maxDelta, now: time.Now}
	c.Reset()
	return c
}

// Reset restarts measurement from the current instant
func (c *Clock) Reset() {
	c.last = c.now()
}

// Tick returns the seconds elapsed since the previous Tick or Reset
func (c *Clock) Tick() float64 {
	now := c.now()
	dt := now.Sub(c.last).Seconds()
	c.last = now

	// Clamp delta time to prevent large jumps
	if dt > c.maxDelta {
		dt = c.maxDelta
	}
	if dt < 0 {
		dt = 0
	}
	return dt
}
