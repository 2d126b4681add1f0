package sand

import (
	"errors"
	"testing"

	"github.com/lixenwraith/strata/domain"
)

func TestGridBoundsChecked(t *testing.T) {
	g, err := NewGrid(4, 3)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	cases := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {4, 3},
	}
	for _, c := range cases {
		if _, err := g.Get(c.x, c.y); err == nil {
			t.Errorf("Expected error for Get(%d,%d)", c.x, c.y)
		} else {
			var oob *OutOfBoundsError
			if !errors.As(err, &oob) {
				t.Errorf("Expected *OutOfBoundsError for (%d,%d), got %T", c.x, c.y, err)
			}
		}
		if err := g.Set(c.x, c.y, Cell{Occupied: true}); err == nil {
			t.Errorf("Expected error for Set(%d,%d)", c.x, c.y)
		}
	}

	if _, err := g.Get(3, 2); err != nil {
		t.Errorf("Expected corner access to succeed, got %v", err)
	}
}

func TestGridDegenerateDimensions(t *testing.T) {
	for _, d := range []struct{ w, h int }{{0, 5}, {5, 0}, {-1, 5}, {0, 0}} {
		if _, err := NewGrid(d.w, d.h); !errors.Is(err, ErrDegenerateResize) {
			t.Errorf("Expected ErrDegenerateResize for %dx%d, got %v", d.w, d.h, err)
		}
	}
	if _, err := NewGrid(1, 1); err != nil {
		t.Errorf("Expected 1x1 grid to be valid, got %v", err)
	}
}

func TestSetClearsCategoryWhenUnoccupied(t *testing.T) {
	g, _ := NewGrid(2, 2)
	g.Set(0, 0, Cell{Occupied: false, Category: domain.CategoryID(7)})

	c, _ := g.Get(0, 0)
	if c.Category != domain.NoneID {
		t.Errorf("Expected unoccupied cell to drop its category, got %d", c.Category)
	}
}

func TestCounts(t *testing.T) {
	g, _ := NewGrid(3, 3)
	g.Set(0, 2, Cell{Occupied: true, Category: 1})
	g.Set(1, 2, Cell{Occupied: true, Category: 1})
	g.Set(2, 2, Cell{Occupied: true, Category: 2})

	counts := Counts(g)
	if counts[1] != 2 || counts[2] != 1 {
		t.Errorf("Expected counts {1:2, 2:1}, got %v", counts)
	}
	if g.Occupied() != 3 {
		t.Errorf("Expected 3 occupied, got %d", g.Occupied())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, _ := NewGrid(2, 2)
	g.Set(0, 0, Cell{Occupied: true, Category: 1})

	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("Expected clone to equal source")
	}

	g.Set(1, 1, Cell{Occupied: true, Category: 2})
	if g.Equal(clone) {
		t.Error("Expected clone to be unaffected by later writes")
	}
}
