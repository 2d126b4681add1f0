package sand

// Resize rebuilds the grid at new dimensions and migrates settled grains
// with a floor-anchored, best-effort projection:
//
//   - x scales proportionally (newX = x*newW/oldW), y keeps its distance
//     from the floor, so the bottom row stays the bottom row and piles are
//     not clipped from the top on shrink;
//   - each target column restacks its grains from the floor up, keeping
//     their vertical order (stratification survives);
//   - grains that do not fit their column spill to the nearest free
//     columns; columns are processed center-outward, so once capacity runs
//     out it is the outermost columns' grains that are discarded, always
//     deterministically.
//
// The swap is atomic: either the new grid fully replaces the old, or (on
// degenerate dimensions) the old grid survives untouched. Resizing never
// panics, including 1x1 targets.
func (e *Engine) Resize(newW, newH int) error {
	if newW <= 0 || newH <= 0 {
		return ErrDegenerateResize
	}

	old := e.grid
	migrated, _ := NewGrid(newW, newH)

	// Bucket grains per target column, floor-up order preserved.
	buckets := make([][]Cell, newW)
	for y := old.height - 1; y >= 0; y-- {
		for x := 0; x < old.width; x++ {
			cell := old.at(x, y)
			if !cell.Occupied {
				continue
			}
			nx := x * newW / old.width
			buckets[nx] = append(buckets[nx], cell)
		}
	}

	order := centerOut(newW)

	// First pass: stack each column's own grains from the floor up,
	// collecting overflow in processing order.
	var spill []Cell
	depth := make([]int, newW)
	for _, x := range order {
		for _, cell := range buckets[x] {
			if depth[x] >= newH {
				spill = append(spill, cell)
				continue
			}
			migrated.put(x, newH-1-depth[x], cell)
			depth[x]++
		}
	}

	// Second pass: spill into whatever free space remains, nearest the
	// center first. Leftovers are the discard.
	for _, x := range order {
		for len(spill) > 0 && depth[x] < newH {
			migrated.put(x, newH-1-depth[x], spill[0])
			depth[x]++
			spill = spill[1:]
		}
	}

	e.grid = migrated
	return nil
}

// centerOut returns every column index ordered from the center outward,
// alternating right then left. Spawning and resize migration both walk
// columns in this order.
func centerOut(w int) []int {
	center := (w - 1) / 2
	cols := make([]int, 0, w)
	cols = append(cols, center)
	for d := 1; len(cols) < w; d++ {
		if center+d < w {
			cols = append(cols, center+d)
		}
		if center-d >= 0 {
			cols = append(cols, center-d)
		}
	}
	return cols
}
