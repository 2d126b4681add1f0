package tui

import "github.com/gdamore/tcell/v2"

// ListItem is one row in a scrollable list.
type ListItem struct {
	Icon      rune // bullet or marker, 0 = none
	IconStyle tcell.Style
	Text      string
	Style     tcell.Style
}

// ListOpts configures list rendering.
type ListOpts struct {
	CursorStyle tcell.Style // applied to the selected row
	IconWidth   int         // cells reserved for the icon, default 2
}

// List renders items into the region with the cursor row highlighted.
// scroll is the index of the first visible item. Returns the number of
// rows drawn.
func (r Region) List(items []ListItem, cursor, scroll int, opts ListOpts) int {
	if r.H < 1 || len(items) == 0 {
		return 0
	}
	iconW := opts.IconWidth
	if iconW == 0 {
		iconW = 2
	}

	rendered := 0
	for y := 0; y < r.H; y++ {
		idx := scroll + y
		if idx >= len(items) {
			break
		}
		item := items[idx]

		style := item.Style
		iconStyle := item.IconStyle
		if idx == cursor {
			style = opts.CursorStyle
			iconStyle = opts.CursorStyle
		}

		for x := 0; x < r.W; x++ {
			r.SetCell(x, y, ' ', style)
		}

		x := 0
		if item.Icon != 0 {
			r.SetCell(x, y, item.Icon, iconStyle)
		}
		x += iconW
		r.Text(x, y, Truncate(item.Text, r.W-x), style)
		rendered++
	}
	return rendered
}

// ScrollIntoView adjusts a scroll offset so cursor stays visible within
// a viewport of height rows.
func ScrollIntoView(cursor, scroll, height int) int {
	if height < 1 {
		return scroll
	}
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+height {
		return cursor - height + 1
	}
	return scroll
}
