package backend

import "time"

// FrameClock is a wall-clock Clock. Tick sleeps as needed to hold the
// loop at the target rate.
type FrameClock struct {
	start time.Time
	last  time.Time
}

// NewFrameClock creates a running frame clock.
func NewFrameClock() *FrameClock {
	now := time.Now()
	return &FrameClock{start: now, last: now}
}

// Tick sleeps until the next frame boundary for the target rate and
// returns the elapsed time since the previous tick. With fps <= 0 it
// returns immediately.
func (c *FrameClock) Tick(fps int) time.Duration {
	now := time.Now()
	elapsed := now.Sub(c.last)

	if fps > 0 {
		frame := time.Second / time.Duration(fps)
		if remaining := frame - elapsed; remaining > 0 {
			time.Sleep(remaining)
			now = time.Now()
			elapsed = now.Sub(c.last)
		}
	}

	c.last = now
	return elapsed
}

// Elapsed returns the time since the clock was created.
func (c *FrameClock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// ManualClock is a Clock for tests: Tick never sleeps and advances
// virtual time by a fixed frame duration.
type ManualClock struct {
	frame time.Duration
	now   time.Duration
	ticks int
}

// NewManualClock creates a manual clock advancing by frame per tick.
func NewManualClock(frame time.Duration) *ManualClock {
	return &ManualClock{frame: frame}
}

// Tick advances virtual time by one frame.
func (c *ManualClock) Tick(fps int) time.Duration {
	c.ticks++
	c.now += c.frame
	return c.frame
}

// Elapsed returns the accumulated virtual time.
func (c *ManualClock) Elapsed() time.Duration {
	return c.now
}

// Ticks returns the number of Tick calls.
func (c *ManualClock) Ticks() int {
	return c.ticks
}
