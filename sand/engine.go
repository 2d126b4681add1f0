package sand

import (
	"sort"

	"github.com/lixenwraith/strata/constants"
	"github.com/lixenwraith/strata/domain"
	"github.com/lixenwraith/strata/vmath"
)

// SpawnPolicy selects how grains pick their spawn column.
type SpawnPolicy int

const (
	// PolicyRoundRobin alternates outward from the center column across
	// free top-row cells, so piles grow symmetrically from the middle.
	PolicyRoundRobin SpawnPolicy = iota

	// PolicyFixedColumn derives a stable column from the category ID, so
	// each category rains into its own lane.
	PolicyFixedColumn
)

// StepStats summarizes one tick for the host loop and for quiescence
// detection during bulk seeding.
type StepStats struct {
	Spawned  int
	Requeued int
	Moved    int
}

// Engine owns one grid plus its spawner and random state. It has no timer
// and no goroutine; the host calls Step once per due simulation tick.
// Evolution is fully determined by (grid, queue, seed).
type Engine struct {
	grid       *Grid
	spawner    *Spawner
	rng        *vmath.FastRand
	policy     SpawnPolicy
	maxPerTick int
}

// NewEngine creates an engine with an empty grid.
func NewEngine(width, height, quantumSeconds int, seed uint64) (*Engine, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	return &Engine{
		grid:       grid,
		spawner:    NewSpawner(quantumSeconds),
		rng:        vmath.NewFastRand(seed),
		policy:     PolicyRoundRobin,
		maxPerTick: constants.DefaultMaxGrainsPerTick,
	}, nil
}

func (e *Engine) Grid() *Grid       { return e.grid }
func (e *Engine) Spawner() *Spawner { return e.spawner }

// SetPolicy switches the spawn-column policy.
func (e *Engine) SetPolicy(p SpawnPolicy) { e.policy = p }

// SetMaxPerTick bounds spawn work per tick. Values below one are ignored.
func (e *Engine) SetMaxPerTick(n int) {
	if n >= 1 {
		e.maxPerTick = n
	}
}

// Step advances the simulation one tick: spawn phase then fall phase.
// Unknown category IDs are placed like any other grain; resolution
// happens at render time via the fallback color.
func (e *Engine) Step() StepStats {
	var stats StepStats
	e.spawn(&stats)
	e.fall(&stats)
	return stats
}

// spawn drains up to maxPerTick grains and places each in the top row.
// Grains whose target cell is occupied go back to the front of the queue
// in order.
func (e *Engine) spawn(stats *StepStats) {
	grains := e.spawner.Drain(e.maxPerTick)
	if len(grains) == 0 {
		return
	}

	var held []Grain
	switch e.policy {
	case PolicyFixedColumn:
		for _, grain := range grains {
			x := int(uint64(grain.Category) % uint64(e.grid.Width()))
			if e.grid.at(x, 0).Occupied {
				held = append(held, grain)
				continue
			}
			e.grid.put(x, 0, Cell{Occupied: true, Category: grain.Category})
			stats.Spawned++
		}
	default:
		cols := centerOut(e.grid.Width())
		next := 0
		for _, grain := range grains {
			placed := false
			for next < len(cols) {
				x := cols[next]
				next++
				if !e.grid.at(x, 0).Occupied {
					e.grid.put(x, 0, Cell{Occupied: true, Category: grain.Category})
					stats.Spawned++
					placed = true
					break
				}
			}
			if !placed {
				held = append(held, grain)
			}
		}
	}

	stats.Requeued = len(held)
	e.spawner.Requeue(held)
}

// fall applies gravity one row per tick. The scan runs bottom-to-top so a
// grain that moves lands in an already-scanned row and never moves twice
// in one tick. Diagonals outside the grid are blocked, not wrapped, and
// there is no sideways sliding once below and both diagonals are taken.
func (e *Engine) fall(stats *StepStats) {
	w, h := e.grid.Width(), e.grid.Height()
	for y := h - 2; y >= 0; y-- {
		for x := 0; x < w; x++ {
			cell := e.grid.at(x, y)
			if !cell.Occupied {
				continue
			}

			tx := -1
			if !e.grid.at(x, y+1).Occupied {
				tx = x
			} else {
				leftFree := x > 0 && !e.grid.at(x-1, y+1).Occupied
				rightFree := x < w-1 && !e.grid.at(x+1, y+1).Occupied
				switch {
				case leftFree && rightFree:
					if e.rng.Bool() {
						tx = x - 1
					} else {
						tx = x + 1
					}
				case leftFree:
					tx = x - 1
				case rightFree:
					tx = x + 1
				}
			}
			if tx < 0 {
				continue // stable this tick
			}

			e.grid.put(tx, y+1, cell)
			e.grid.put(x, y, Cell{})
			stats.Moved++
		}
	}
}

// SeedFromTotals pre-populates the pile from per-category elapsed totals
// without replaying session history: enqueue in ascending category order
// for reproducibility, then run bulk ticks until nothing spawns or moves.
// Grains beyond the grid's capacity stay queued.
func (e *Engine) SeedFromTotals(totals map[domain.CategoryID]int) {
	ids := make([]domain.CategoryID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		e.spawner.AccumulateElapsed(id, totals[id])
	}

	saved := e.maxPerTick
	e.maxPerTick = e.grid.Width()
	limit := e.grid.Width()*e.grid.Height() + e.spawner.Len() + e.grid.Height()
	for i := 0; i < limit; i++ {
		stats := e.Step()
		if stats.Spawned == 0 && stats.Moved == 0 {
			break
		}
	}
	e.maxPerTick = saved
}

// ClearCategory removes every settled grain of one category. Grains above
// the holes fall back down over the following ticks.
func (e *Engine) ClearCategory(cat domain.CategoryID) {
	for y := 0; y < e.grid.Height(); y++ {
		for x := 0; x < e.grid.Width(); x++ {
			if c := e.grid.at(x, y); c.Occupied && c.Category == cat {
				e.grid.put(x, y, Cell{})
			}
		}
	}
}

// Reset discards every settled grain, starting a fresh epoch on the same
// dimensions.
func (e *Engine) Reset() {
	grid, _ := NewGrid(e.grid.Width(), e.grid.Height())
	e.grid = grid
}
