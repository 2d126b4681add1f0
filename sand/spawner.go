package sand

import (
	"github.com/lixenwraith/strata/domain"
)

// Grain is a queued spawn request. It exists only until placed into a
// cell, at which point the cell carries the category and the grain is
// gone.
type Grain struct {
	Category domain.CategoryID
}

// Spawner converts elapsed-session time into pending grains at a fixed
// ratio of one grain per quantum seconds. The pending queue is strictly
// FIFO so the oldest session's grains settle first and the pile keeps its
// chronological stratification.
//
// Binding invariant: for every category, the total grains ever enqueued
// through AccumulateElapsed equals floor(totalElapsedSeconds/quantum) at
// all times. Explicit Enqueue calls (seeding, tests) add on top of that.
type Spawner struct {
	quantum int
	queue   []Grain

	elapsed  map[domain.CategoryID]int // accumulated seconds per category
	produced map[domain.CategoryID]int // grains emitted from elapsed time
	enqueued map[domain.CategoryID]int // grains ever enqueued, any source
}

// NewSpawner creates a spawner. A quantum below one second is raised to
// one.
func NewSpawner(quantumSeconds int) *Spawner {
	if quantumSeconds < 1 {
		quantumSeconds = 1
	}
	return &Spawner{
		quantum:  quantumSeconds,
		elapsed:  make(map[domain.CategoryID]int),
		produced: make(map[domain.CategoryID]int),
		enqueued: make(map[domain.CategoryID]int),
	}
}

// Quantum returns the seconds of tracked time one grain represents.
func (s *Spawner) Quantum() int { return s.quantum }

// Enqueue appends count explicit grains for a category.
func (s *Spawner) Enqueue(cat domain.CategoryID, count int) {
	for i := 0; i < count; i++ {
		s.queue = append(s.queue, Grain{Category: cat})
	}
	if count > 0 {
		s.enqueued[cat] += count
	}
}

// AccumulateElapsed folds elapsed seconds into a category's running total
// and enqueues exactly the grains needed to keep the emitted count equal
// to floor(total/quantum). Seconds may arrive in any increments; the pile
// size stays an honest monotone function of tracked time.
func (s *Spawner) AccumulateElapsed(cat domain.CategoryID, seconds int) {
	if seconds <= 0 {
		return
	}
	s.elapsed[cat] += seconds
	owed := s.elapsed[cat]/s.quantum - s.produced[cat]
	if owed <= 0 {
		return
	}
	s.produced[cat] += owed
	s.Enqueue(cat, owed)
}

// Drain removes and returns up to maxPerTick grains in FIFO order.
func (s *Spawner) Drain(maxPerTick int) []Grain {
	if maxPerTick <= 0 || len(s.queue) == 0 {
		return nil
	}
	n := maxPerTick
	if n > len(s.queue) {
		n = len(s.queue)
	}
	drained := make([]Grain, n)
	copy(drained, s.queue[:n])
	s.queue = s.queue[:copy(s.queue, s.queue[n:])]
	return drained
}

// Requeue returns undrained grains to the front of the queue in their
// original order. Back-pressure, never drop: a grain held because its
// spawn cell was occupied is retried next tick ahead of newer grains.
func (s *Spawner) Requeue(grains []Grain) {
	if len(grains) == 0 {
		return
	}
	s.queue = append(append(make([]Grain, 0, len(grains)+len(s.queue)), grains...), s.queue...)
}

// Len returns the number of pending grains.
func (s *Spawner) Len() int { return len(s.queue) }

// EnqueuedTotal returns the grains ever enqueued for a category, drained
// or not.
func (s *Spawner) EnqueuedTotal(cat domain.CategoryID) int {
	return s.enqueued[cat]
}
