package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/strata/constants"
	"github.com/lixenwraith/strata/sand"
)

// Blit draws a rendered sand frame onto the screen with its top-left
// corner at (ox,oy). Cells outside the screen are clipped.
func Blit(screen tcell.Screen, frame *sand.Frame, ox, oy int) {
	sw, sh := screen.Size()
	base := tcell.StyleDefault.Background(RgbBackground)

	for y := 0; y < frame.Height; y++ {
		sy := oy + y
		if sy < 0 || sy >= sh {
			continue
		}
		for x := 0; x < frame.Width; x++ {
			sx := ox + x
			if sx < 0 || sx >= sw {
				continue
			}
			cell := frame.At(x, y)
			style := base
			if cell.Lit {
				style = style.Foreground(ToTcell(cell.Color))
			}
			screen.SetContent(sx, sy, cell.Glyph, nil, style)
		}
	}
}

// GridSizeFor returns the simulation grid dimensions backing a sand pane
// of the given character-cell size. Panes smaller than one character
// still get a 1-dot grid so the engine never sees degenerate dimensions.
func GridSizeFor(paneW, paneH int) (int, int) {
	w := paneW * constants.DotWidth
	h := paneH * constants.DotHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
