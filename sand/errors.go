package sand

import (
	"errors"
	"fmt"
)

// ErrDegenerateResize is returned when a resize target has a non-positive
// dimension. The grid keeps its previous dimensions.
var ErrDegenerateResize = errors.New("sand: resize dimensions must be positive")

// OutOfBoundsError reports a coordinate access outside the current grid.
// Bounds are never clamped; the automaton treats edges as explicit
// boundary conditions.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("sand: coordinate (%d,%d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}
