package tui

import "github.com/gdamore/tcell/v2"

// SparklineChars provides 8-level vertical resolution.
var SparklineChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// HBar draws a horizontal bar filled to frac of width. Partial cells use
// the eighth-block runes for a smoother edge.
func (r Region) HBar(x, y, width int, frac float64, style tcell.Style) {
	if width <= 0 || y < 0 || y >= r.H {
		return
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	eighths := int(frac*float64(width)*8 + 0.5)
	full := eighths / 8
	rem := eighths % 8

	for i := 0; i < width; i++ {
		switch {
		case i < full:
			r.SetCell(x+i, y, '█', style)
		case i == full && rem > 0:
			// horizontal partials reuse the left-block ramp
			r.SetCell(x+i, y, []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}[rem], style)
		default:
			r.SetCell(x+i, y, ' ', style)
		}
	}
}

// Sparkline renders values as 8-level block characters. When there are
// more values than width, the most recent window is shown.
func (r Region) Sparkline(x, y, width int, values []float64, style tcell.Style) {
	if width <= 0 || y < 0 || y >= r.H || len(values) == 0 {
		return
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	window := values
	if len(window) > width {
		window = window[len(window)-width:]
	}
	for i, v := range window {
		if x+i >= r.W {
			break
		}
		norm := (v - lo) / span
		level := int(norm * float64(len(SparklineChars)-1))
		r.SetCell(x+i, y, SparklineChars[level], style)
	}
}
