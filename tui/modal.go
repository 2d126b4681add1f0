package tui

import "github.com/gdamore/tcell/v2"

// Box border runes, single-line style.
var (
	boxHorizontal  = '─'
	boxVertical    = '│'
	boxTopLeft     = '┌'
	boxTopRight    = '┐'
	boxBottomLeft  = '└'
	boxBottomRight = '┘'
)

// Box draws a single-line border along the region's edge.
func (r Region) Box(style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	for x := 1; x < r.W-1; x++ {
		r.SetCell(x, 0, boxHorizontal, style)
		r.SetCell(x, r.H-1, boxHorizontal, style)
	}
	for y := 1; y < r.H-1; y++ {
		r.SetCell(0, y, boxVertical, style)
		r.SetCell(r.W-1, y, boxVertical, style)
	}
	r.SetCell(0, 0, boxTopLeft, style)
	r.SetCell(r.W-1, 0, boxTopRight, style)
	r.SetCell(0, r.H-1, boxBottomLeft, style)
	r.SetCell(r.W-1, r.H-1, boxBottomRight, style)
}

// ModalOpts configures modal overlay rendering.
type ModalOpts struct {
	Title string
	Hint  string // right-aligned on the top edge

	Bg       tcell.Style
	BorderFg tcell.Style
	TitleFg  tcell.Style
	HintFg   tcell.Style
}

// Modal fills the region, draws a border with title and hint, and
// returns the inner content region.
func (r Region) Modal(opts ModalOpts) Region {
	if r.W < 5 || r.H < 3 {
		return r.Sub(1, 1, 0, 0)
	}

	r.Fill(opts.Bg)
	r.Box(opts.BorderFg)

	if opts.Title != "" {
		title := " " + Truncate(opts.Title, r.W-6) + " "
		x := (r.W - len([]rune(title))) / 2
		r.Text(x, 0, title, opts.TitleFg.Bold(true))
	}

	if opts.Hint != "" {
		hint := Truncate(opts.Hint, r.W/3)
		x := r.W - len([]rune(hint)) - 2
		if x < r.W/2 {
			x = r.W / 2
		}
		for i, ch := range hint {
			if x+i >= r.W-1 {
				break
			}
			r.SetCell(x+i, 0, ch, opts.HintFg)
		}
	}

	return r.Sub(1, 1, r.W-2, r.H-2)
}

// Center returns a w x h region centered inside r, clipped when r is
// smaller.
func (r Region) Center(w, h int) Region {
	if w > r.W {
		w = r.W
	}
	if h > r.H {
		h = r.H
	}
	return r.Sub((r.W-w)/2, (r.H-h)/2, w, h)
}
