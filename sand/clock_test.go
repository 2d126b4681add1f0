package sand

import (
	"testing"
	"time"
)

func TestClockAccumulatesPartialIntervals(t *testing.T) {
	c := NewSimulationClock(32*time.Millisecond, 8)

	if got := c.Advance(20 * time.Millisecond); got != 0 {
		t.Errorf("Expected 0 ticks after 20ms, got %d", got)
	}
	if got := c.Advance(20 * time.Millisecond); got != 1 {
		t.Errorf("Expected 1 tick after 40ms total, got %d", got)
	}
	// 8ms remainder carried over.
	if got := c.Advance(24 * time.Millisecond); got != 1 {
		t.Errorf("Expected carried remainder to complete a tick, got %d", got)
	}
}

func TestClockCatchUpCap(t *testing.T) {
	c := NewSimulationClock(32*time.Millisecond, 4)

	if got := c.Advance(2 * time.Second); got != 4 {
		t.Errorf("Expected catch-up capped at 4, got %d", got)
	}
	// Backlog beyond the cap is dropped, not replayed.
	if got := c.Advance(31 * time.Millisecond); got != 0 {
		t.Errorf("Expected no tick right after a capped advance, got %d", got)
	}
}

func TestClockIgnoresNonPositiveElapsed(t *testing.T) {
	c := NewSimulationClock(32*time.Millisecond, 8)
	if got := c.Advance(-time.Second); got != 0 {
		t.Errorf("Expected 0 ticks for negative elapsed, got %d", got)
	}
}

func TestClockReset(t *testing.T) {
	c := NewSimulationClock(32*time.Millisecond, 8)
	c.Advance(30 * time.Millisecond)
	c.Reset()
	if got := c.Advance(30 * time.Millisecond); got != 0 {
		t.Errorf("Expected reset to drop the partial interval, got %d ticks", got)
	}
}
