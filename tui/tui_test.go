package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	ch, _, _, _ := screen.GetContent(x, y)
	return ch
}

func TestSubClipsToParent(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewRegion(screen)

	sub := r.Sub(15, 8, 10, 10)
	if sub.W != 5 || sub.H != 2 {
		t.Errorf("Expected clipped 5x2, got %dx%d", sub.W, sub.H)
	}

	neg := r.Sub(-3, -2, 10, 10)
	if neg.X != 0 || neg.Y != 0 || neg.W != 7 || neg.H != 8 {
		t.Errorf("Expected negative origin clipped, got %+v", neg)
	}

	empty := r.Sub(25, 25, 5, 5)
	if empty.W != 0 || empty.H != 0 {
		t.Errorf("Expected empty region, got %dx%d", empty.W, empty.H)
	}
}

func TestSetCellRespectsBounds(t *testing.T) {
	screen := newTestScreen(t, 10, 5)
	r := NewRegion(screen).Sub(2, 1, 4, 2)

	r.SetCell(0, 0, 'A', tcell.StyleDefault)
	r.SetCell(5, 0, 'B', tcell.StyleDefault) // outside the sub-region

	if runeAt(screen, 2, 1) != 'A' {
		t.Error("Expected 'A' at translated origin")
	}
	if runeAt(screen, 7, 1) == 'B' {
		t.Error("Expected out-of-region write to be dropped")
	}
}

func TestTextClips(t *testing.T) {
	screen := newTestScreen(t, 10, 3)
	r := NewRegion(screen).Sub(0, 0, 5, 1)

	n := r.Text(0, 0, "overflowing", tcell.StyleDefault)
	if n != 5 {
		t.Errorf("Expected 5 cells drawn, got %d", n)
	}
	if runeAt(screen, 4, 0) != 'r' {
		t.Errorf("Expected clipped text, got %q", runeAt(screen, 4, 0))
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		w    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"toolongtext", 5, "tool…"},
		{"ab", 1, "a"},
		{"ab", 0, ""},
	}
	for _, c := range cases {
		if got := Truncate(c.in, c.w); got != c.want {
			t.Errorf("Truncate(%q,%d): expected %q, got %q", c.in, c.w, c.want, got)
		}
	}
}

func TestModalDrawsBorderAndTitle(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewRegion(screen)

	content := r.Modal(ModalOpts{
		Title:    "Report",
		Bg:       tcell.StyleDefault,
		BorderFg: tcell.StyleDefault,
		TitleFg:  tcell.StyleDefault,
	})

	if runeAt(screen, 0, 0) != boxTopLeft {
		t.Errorf("Expected border corner, got %q", runeAt(screen, 0, 0))
	}
	if content.W != 18 || content.H != 8 {
		t.Errorf("Expected 18x8 content region, got %dx%d", content.W, content.H)
	}

	found := false
	for x := 0; x < 20; x++ {
		if runeAt(screen, x, 0) == 'R' {
			found = true
		}
	}
	if !found {
		t.Error("Expected title text on the top edge")
	}
}

func TestModalTooSmall(t *testing.T) {
	screen := newTestScreen(t, 4, 2)
	content := NewRegion(screen).Modal(ModalOpts{Title: "X"})
	if content.W != 0 || content.H != 0 {
		t.Errorf("Expected empty content region for tiny modal, got %dx%d", content.W, content.H)
	}
}

func TestListCursorAndScroll(t *testing.T) {
	screen := newTestScreen(t, 12, 2)
	r := NewRegion(screen)

	items := []ListItem{
		{Text: "alpha"},
		{Text: "beta"},
		{Text: "gamma"},
	}
	n := r.List(items, 2, 1, ListOpts{CursorStyle: tcell.StyleDefault.Reverse(true)})
	if n != 2 {
		t.Errorf("Expected 2 rows rendered, got %d", n)
	}
	// Scrolled past alpha: row 0 shows beta.
	if runeAt(screen, 2, 0) != 'b' {
		t.Errorf("Expected 'b' at row 0, got %q", runeAt(screen, 2, 0))
	}

	_, _, style, _ := screen.GetContent(2, 1)
	_, _, attrs := style.Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Error("Expected cursor row styled with reverse")
	}
}

func TestScrollIntoView(t *testing.T) {
	cases := []struct {
		cursor, scroll, height, want int
	}{
		{0, 0, 5, 0},
		{4, 0, 5, 0},
		{5, 0, 5, 1}, // one past the viewport scrolls down
		{2, 6, 5, 2}, // above the viewport scrolls up
		{9, 2, 5, 5},
	}
	for _, c := range cases {
		if got := ScrollIntoView(c.cursor, c.scroll, c.height); got != c.want {
			t.Errorf("ScrollIntoView(%d,%d,%d): expected %d, got %d",
				c.cursor, c.scroll, c.height, c.want, got)
		}
	}
}

func TestHBarFill(t *testing.T) {
	screen := newTestScreen(t, 10, 1)
	r := NewRegion(screen)

	r.HBar(0, 0, 10, 0.5, tcell.StyleDefault)
	if runeAt(screen, 4, 0) != '█' {
		t.Errorf("Expected filled cell at 4, got %q", runeAt(screen, 4, 0))
	}
	if runeAt(screen, 6, 0) != ' ' {
		t.Errorf("Expected empty cell at 6, got %q", runeAt(screen, 6, 0))
	}
}

func TestSparklineLevels(t *testing.T) {
	screen := newTestScreen(t, 10, 1)
	r := NewRegion(screen)

	r.Sparkline(0, 0, 4, []float64{0, 1, 2, 3}, tcell.StyleDefault)
	if runeAt(screen, 0, 0) != SparklineChars[0] {
		t.Errorf("Expected lowest level first, got %q", runeAt(screen, 0, 0))
	}
	if runeAt(screen, 3, 0) != SparklineChars[len(SparklineChars)-1] {
		t.Errorf("Expected highest level last, got %q", runeAt(screen, 3, 0))
	}
}

func TestStatusBarSegments(t *testing.T) {
	screen := newTestScreen(t, 12, 2)
	r := NewRegion(screen)

	r.StatusBar(1, []Segment{
		{Text: "NORMAL ", Style: tcell.StyleDefault},
		{Text: "work", Style: tcell.StyleDefault},
	}, tcell.StyleDefault)

	if runeAt(screen, 0, 1) != 'N' {
		t.Errorf("Expected first segment at origin, got %q", runeAt(screen, 0, 1))
	}
	if runeAt(screen, 7, 1) != 'w' {
		t.Errorf("Expected second segment appended, got %q", runeAt(screen, 7, 1))
	}
}
