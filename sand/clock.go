package sand

import "time"

// SimulationClock converts wall-clock elapsed time into a bounded number
// of due ticks. The engine owns no timer; the host loop measures elapsed
// time and calls Advance, then runs Step that many times.
type SimulationClock struct {
	interval    time.Duration
	accumulated time.Duration
	maxCatchUp  int
}

// NewSimulationClock creates a clock firing every interval, running at
// most maxCatchUp ticks per Advance. After a long stall (debugger,
// suspend) the excess backlog is dropped instead of spiraling.
func NewSimulationClock(interval time.Duration, maxCatchUp int) *SimulationClock {
	if maxCatchUp < 1 {
		maxCatchUp = 1
	}
	return &SimulationClock{interval: interval, maxCatchUp: maxCatchUp}
}

// Advance folds elapsed time into the accumulator and returns the number
// of ticks now due, capped at maxCatchUp.
func (c *SimulationClock) Advance(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	c.accumulated += elapsed

	ticks := int(c.accumulated / c.interval)
	if ticks > c.maxCatchUp {
		ticks = c.maxCatchUp
		c.accumulated = 0
		return ticks
	}
	c.accumulated -= time.Duration(ticks) * c.interval
	return ticks
}

// Reset clears any accumulated partial interval.
func (c *SimulationClock) Reset() {
	c.accumulated = 0
}
