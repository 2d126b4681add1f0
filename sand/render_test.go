package sand

import (
	"testing"

	"github.com/lixenwraith/strata/constants"
	"github.com/lixenwraith/strata/domain"
)

type stubTable map[domain.CategoryID]int

func (t stubTable) ColorIndex(id domain.CategoryID) (int, bool) {
	idx, ok := t[id]
	return idx, ok
}

var testPalette = []RGB{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
}

var (
	testFallback   = RGB{255, 255, 255}
	testBackground = RGB{10, 10, 10}
)

func TestRenderBrailleComposition(t *testing.T) {
	g, _ := NewGrid(2, 4) // exactly one character cell
	r := NewRenderer(testPalette, testFallback, testBackground)
	table := stubTable{1: 0}

	// Bottom-left dot only: braille bit 6.
	g.Set(0, 3, Cell{Occupied: true, Category: 1})
	frame := r.Render(g, table)

	if frame.Width != 1 || frame.Height != 1 {
		t.Fatalf("Expected 1x1 frame, got %dx%d", frame.Width, frame.Height)
	}
	cell := frame.At(0, 0)
	if cell.Glyph != rune(constants.BrailleBase+(1<<6)) {
		t.Errorf("Expected braille glyph %#x, got %#x", constants.BrailleBase+(1<<6), cell.Glyph)
	}
	if !cell.Lit {
		t.Error("Expected cell to be lit")
	}
	if cell.Color != testPalette[0] {
		t.Errorf("Expected palette color %v, got %v", testPalette[0], cell.Color)
	}
}

func TestRenderFullPatch(t *testing.T) {
	g, _ := NewGrid(2, 4)
	r := NewRenderer(testPalette, testFallback, testBackground)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			g.Set(x, y, Cell{Occupied: true, Category: 1})
		}
	}

	cell := r.Render(g, stubTable{1: 1}).At(0, 0)
	if cell.Glyph != rune(constants.BrailleBase+0xFF) {
		t.Errorf("Expected all eight dots %#x, got %#x", constants.BrailleBase+0xFF, cell.Glyph)
	}
	if cell.Color != testPalette[1] {
		t.Errorf("Expected uniform patch to keep its color, got %v", cell.Color)
	}
}

func TestRenderEmptyUsesBackground(t *testing.T) {
	g, _ := NewGrid(4, 8)
	r := NewRenderer(testPalette, testFallback, testBackground)

	frame := r.Render(g, stubTable{})
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			cell := frame.At(x, y)
			if cell.Lit {
				t.Fatalf("Expected unlit cell at (%d,%d)", x, y)
			}
			if cell.Color != testBackground {
				t.Fatalf("Expected background color at (%d,%d), got %v", x, y, cell.Color)
			}
			if cell.Glyph != rune(constants.BrailleBase) {
				t.Fatalf("Expected blank braille at (%d,%d), got %#x", x, y, cell.Glyph)
			}
		}
	}
}

func TestRenderOrphanFallsBack(t *testing.T) {
	g, _ := NewGrid(2, 4)
	r := NewRenderer(testPalette, testFallback, testBackground)
	g.Set(0, 3, Cell{Occupied: true, Category: 999})

	cell := r.Render(g, stubTable{}).At(0, 0)
	if cell.Color != testFallback {
		t.Errorf("Expected fallback color for orphaned category, got %v", cell.Color)
	}
	if !cell.Lit {
		t.Error("Expected orphaned grain to still render")
	}
}

func TestRenderBlendsCategories(t *testing.T) {
	g, _ := NewGrid(2, 4)
	r := NewRenderer(testPalette, testFallback, testBackground)
	g.Set(0, 3, Cell{Occupied: true, Category: 1}) // red
	g.Set(1, 3, Cell{Occupied: true, Category: 2}) // green

	cell := r.Render(g, stubTable{1: 0, 2: 1}).At(0, 0)
	want := RGB{127, 127, 0}
	if cell.Color != want {
		t.Errorf("Expected blended color %v, got %v", want, cell.Color)
	}
}

func TestRenderIsValueCopy(t *testing.T) {
	g, _ := NewGrid(2, 4)
	r := NewRenderer(testPalette, testFallback, testBackground)
	g.Set(0, 3, Cell{Occupied: true, Category: 1})

	frame := r.Render(g, stubTable{1: 0})
	glyph := frame.At(0, 0).Glyph

	g.Set(1, 3, Cell{Occupied: true, Category: 1})
	if frame.At(0, 0).Glyph != glyph {
		t.Error("Expected produced frame to be immune to later grid writes")
	}
}

// Reordering categories changes display order, never identity: cells keep
// their stored IDs and, with color indexes unchanged per ID, their
// resolved colors.
func TestRenderStableAcrossReorder(t *testing.T) {
	store := domain.NewCategoryStore()
	aID, _ := store.Add("A", "", 0)
	bID, _ := store.Add("B", "", 1)

	g, _ := NewGrid(4, 4)
	g.Set(0, 3, Cell{Occupied: true, Category: aID})
	g.Set(1, 3, Cell{Occupied: true, Category: bID})
	r := NewRenderer(testPalette, testFallback, testBackground)

	before := r.Render(g, store)

	idx, _ := store.IndexOfID(aID)
	if !store.MoveDown(idx) {
		t.Fatal("Expected reorder to succeed")
	}

	after := r.Render(g, store)
	for i := range before.Cells {
		if before.Cells[i] != after.Cells[i] {
			t.Fatalf("Cell %d changed across reorder: %+v vs %+v", i, before.Cells[i], after.Cells[i])
		}
	}

	cellA, _ := g.Get(0, 3)
	if cellA.Category != aID {
		t.Error("Expected stored category ID untouched by reorder")
	}
}
