package handler

import "time"

// Clock is a Ticker backed by time.Ticker.
type Clock struct {
	period time.Duration
	ticker *time.Ticker
	c      <-chan time.Time
}

// NewClock creates a stopped Clock ticking every period once started.
func NewClock(period time.Duration) *Clock {
	return &Clock{period: period}
}

// Start arms the clock.
func (c *Clock) Start() {
	if c.ticker == nil {
		c.ticker = time.NewTicker(c.period)
	} else {
		c.ticker.Reset(c.period)
	}
	c.c = c.ticker.C
}

// Stop disarms the clock.
func (c *Clock) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.c = nil
}

// C returns the tick channel, nil while the clock is stopped.
func (c *Clock) C() <-chan time.Time {
	return c.c
}
