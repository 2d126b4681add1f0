package tui

import "github.com/gdamore/tcell/v2"

// Region is a rectangular area of the screen. All drawing coordinates
// are relative to the region's origin and clipped to its bounds, so
// widgets never need to know where on screen they live.
type Region struct {
	Screen tcell.Screen
	X, Y   int // absolute origin
	W, H   int
}

// NewRegion returns the full-screen region.
func NewRegion(screen tcell.Screen) Region {
	w, h := screen.Size()
	return Region{Screen: screen, W: w, H: h}
}

// Sub returns a nested region relative to the parent, clipped to the
// parent's bounds.
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Region{Screen: r.Screen, X: r.X + x, Y: r.Y + y, W: w, H: h}
}

// Inset returns the region shrunk by n cells on all sides.
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// SetCell draws one rune with bounds checking.
func (r Region) SetCell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.Screen.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Fill paints the whole region with spaces in the given style.
func (r Region) Fill(style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.SetCell(x, y, ' ', style)
		}
	}
}

// Text draws a string at (x,y), clipped to the region. Returns the
// number of cells drawn.
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	n := 0
	for _, ch := range s {
		if x+n >= r.W {
			break
		}
		r.SetCell(x+n, y, ch, style)
		n++
	}
	return n
}

// TextRight draws a string right-aligned against the region's edge.
func (r Region) TextRight(y int, s string, style tcell.Style) {
	runes := []rune(s)
	if len(runes) > r.W {
		runes = runes[len(runes)-r.W:]
	}
	r.Text(r.W-len(runes), y, string(runes), style)
}

// TextCentered draws a string horizontally centered on row y.
func (r Region) TextCentered(y int, s string, style tcell.Style) {
	runes := []rune(s)
	if len(runes) > r.W {
		runes = runes[:r.W]
	}
	r.Text((r.W-len(runes))/2, y, string(runes), style)
}

// Truncate cuts a string to at most w cells, appending an ellipsis when
// something was dropped.
func Truncate(s string, w int) string {
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	if w <= 1 {
		return string(runes[:max(w, 0)])
	}
	return string(runes[:w-1]) + "…"
}
