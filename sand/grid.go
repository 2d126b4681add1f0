package sand

import (
	"github.com/lixenwraith/strata/domain"
)

// Cell is one grid position. Category is meaningful only while Occupied is
// set; empty cells always carry the zero category.
type Cell struct {
	Occupied bool
	Category domain.CategoryID
}

// Grid is a fixed-size rectangular field of cells with gravity along the
// y axis (y grows downward, row Height-1 is the floor). Dimensions are
// fixed for the lifetime of an epoch; only an explicit resize replaces
// them.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates an empty grid. Non-positive dimensions return
// ErrDegenerateResize.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrDegenerateResize
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x,y) is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at (x,y). Out-of-range coordinates return an
// *OutOfBoundsError, never a clamped neighbor.
func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, &OutOfBoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return g.cells[y*g.width+x], nil
}

// Set stores a cell at (x,y). An unoccupied cell has its category cleared
// so Category != 0 implies Occupied.
func (g *Grid) Set(x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return &OutOfBoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	if !c.Occupied {
		c.Category = domain.NoneID
	}
	g.cells[y*g.width+x] = c
	return nil
}

// at is the unchecked accessor for automaton-internal scans, which only
// visit coordinates already validated against the grid dimensions.
func (g *Grid) at(x, y int) Cell {
	return g.cells[y*g.width+x]
}

func (g *Grid) put(x, y int, c Cell) {
	g.cells[y*g.width+x] = c
}

// Occupied reports the occupied-cell total.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.cells {
		if c.Occupied {
			n++
		}
	}
	return n
}

// Counts scans settled cells and returns the occupancy per category, for
// legends and summaries.
func Counts(g *Grid) map[domain.CategoryID]int {
	counts := make(map[domain.CategoryID]int)
	for _, c := range g.cells {
		if c.Occupied {
			counts[c.Category]++
		}
	}
	return counts
}

// Clone returns an independent copy, used by tests comparing evolutions.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Equal reports whether two grids have identical dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
