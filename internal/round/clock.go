package round

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock measures a round against a monotonic time source. It never sleeps;
// callers poll it.
type Clock struct {
	src     clockwork.Clock
	started time.Time
	running bool
	stopped bool
	last    time.Duration
}

// NewClock returns a clock reading src. The real clockwork clock reads
// time.Now, which carries Go's monotonic reading.
func NewClock(src clockwork.Clock) *Clock {
	return &Clock{src: src}
}

// Start begins measuring. Calling it again has no effect.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.started = c.src.Now()
	c.running = true
}

// Started reports whether Start was called.
func (c *Clock) Started() bool {
	return c.running
}

// Stop freezes Elapsed at its current value.
func (c *Clock) Stop() {
	if !c.running || c.stopped {
		return
	}
	c.sample()
	c.stopped = true
}

// Elapsed returns the time since Start. Before Start it returns 0 and
// ErrClockNotStarted. The value never decreases.
func (c *Clock) Elapsed() (time.Duration, error) {
	if !c.running {
		return 0, ErrClockNotStarted
	}
	if c.stopped {
		return c.last, nil
	}
	return c.sample(), nil
}

// Remaining returns limit minus Elapsed, clamped at zero.
func (c *Clock) Remaining(limit time.Duration) time.Duration {
	elapsed, _ := c.Elapsed()
	if rem := limit - elapsed; rem > 0 {
		return rem
	}
	return 0
}

// Expired reports whether a started clock has used up limit.
func (c *Clock) Expired(limit time.Duration) bool {
	elapsed, err := c.Elapsed()
	return err == nil && elapsed >= limit
}

func (c *Clock) sample() time.Duration {
	if d := c.src.Since(c.started); d > c.last {
		c.last = d
	}
	return c.last
}
