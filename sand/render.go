package sand

import (
	"github.com/lixenwraith/strata/constants"
	"github.com/lixenwraith/strata/domain"
)

// RGB is a display color. The sand package stays backend-agnostic; the
// render package converts these to terminal colors.
type RGB struct {
	R, G, B uint8
}

// ColorTable resolves a category to its palette slot. The engine never
// mutates the table and tolerates categories vanishing between frames;
// unresolved IDs fall back at render time.
type ColorTable interface {
	ColorIndex(id domain.CategoryID) (int, bool)
}

// FrameCell is one character cell of rendered output.
type FrameCell struct {
	Glyph rune
	Color RGB
	Lit   bool
}

// Frame is a value copy of the rendered grid. Mutating the grid after
// rendering never changes an already produced frame.
type Frame struct {
	Width  int
	Height int
	Cells  []FrameCell
}

// At returns the frame cell at (x,y) in character coordinates.
func (f *Frame) At(x, y int) FrameCell {
	return f.Cells[y*f.Width+x]
}

// Renderer composes the grid into braille glyphs. Each character cell
// covers a DotWidth x DotHeight patch of grid cells; the glyph's color is
// the average of the contributing categories' colors, weighted by dot
// count. Pure with respect to the grid: no mutation, no I/O.
type Renderer struct {
	palette    []RGB
	fallback   RGB
	background RGB
}

// NewRenderer creates a renderer over a fixed palette. Color indexes are
// folded into the palette modulo its length; unresolvable categories use
// the fallback color and empty patches the background.
func NewRenderer(palette []RGB, fallback, background RGB) *Renderer {
	return &Renderer{palette: palette, fallback: fallback, background: background}
}

// dotBit maps a (dx,dy) position inside a braille patch to its pattern
// bit, per the Unicode braille block layout.
var dotBit = [constants.DotWidth][constants.DotHeight]uint8{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// FrameSize returns the character-cell dimensions for a grid.
func FrameSize(g *Grid) (int, int) {
	w := (g.Width() + constants.DotWidth - 1) / constants.DotWidth
	h := (g.Height() + constants.DotHeight - 1) / constants.DotHeight
	return w, h
}

// Render maps the grid plus the category table into a frame buffer.
func (r *Renderer) Render(g *Grid, table ColorTable) *Frame {
	fw, fh := FrameSize(g)
	frame := &Frame{
		Width:  fw,
		Height: fh,
		Cells:  make([]FrameCell, fw*fh),
	}

	for cy := 0; cy < fh; cy++ {
		for cx := 0; cx < fw; cx++ {
			var mask uint8
			var sumR, sumG, sumB, lit int

			for dy := 0; dy < constants.DotHeight; dy++ {
				for dx := 0; dx < constants.DotWidth; dx++ {
					x := cx*constants.DotWidth + dx
					y := cy*constants.DotHeight + dy
					if !g.InBounds(x, y) {
						continue
					}
					cell := g.at(x, y)
					if !cell.Occupied {
						continue
					}
					mask |= 1 << dotBit[dx][dy]
					c := r.resolve(cell.Category, table)
					sumR += int(c.R)
					sumG += int(c.G)
					sumB += int(c.B)
					lit++
				}
			}

			out := FrameCell{Glyph: rune(constants.BrailleBase + int(mask))}
			if lit > 0 {
				out.Lit = true
				out.Color = RGB{
					R: uint8(sumR / lit),
					G: uint8(sumG / lit),
					B: uint8(sumB / lit),
				}
			} else {
				out.Color = r.background
			}
			frame.Cells[cy*fw+cx] = out
		}
	}
	return frame
}

func (r *Renderer) resolve(id domain.CategoryID, table ColorTable) RGB {
	if table != nil && len(r.palette) > 0 {
		if idx, ok := table.ColorIndex(id); ok && idx >= 0 {
			return r.palette[idx%len(r.palette)]
		}
	}
	return r.fallback
}
