package tui

import "github.com/gdamore/tcell/v2"

// Segment is one piece of a status bar.
type Segment struct {
	Text  string
	Style tcell.Style
}

// StatusBar renders segments left to right across row y, padding the
// remainder with the fill style. Segments that would overflow are
// clipped.
func (r Region) StatusBar(y int, segments []Segment, fill tcell.Style) {
	for x := 0; x < r.W; x++ {
		r.SetCell(x, y, ' ', fill)
	}
	x := 0
	for _, seg := range segments {
		if x >= r.W {
			break
		}
		x += r.Text(x, y, seg.Text, seg.Style)
	}
}
