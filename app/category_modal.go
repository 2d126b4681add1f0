package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/strata/render"
	"github.com/lixenwraith/strata/tui"
	"github.com/lixenwraith/strata/vmath"
)

// modalRegion returns a centered region sized numerator/denominator of
// the screen, at least 10 rows tall, clamped inside the screen with a
// one-cell margin.
func modalRegion(root tui.Region, numerator, denominator int) tui.Region {
	targetW := root.W * numerator / denominator
	targetH := root.H * numerator / denominator
	if targetH < 10 {
		targetH = 10
	}

	w := clampDim(targetW, root.W-2)
	h := clampDim(targetH, root.H-2)
	return root.Center(w, h)
}

func clampDim(v, upper int) int {
	return vmath.Clamp(v, 1, vmath.Max(upper, 1))
}

func (a *App) drawCategoryModal(root tui.Region) {
	region := modalRegion(root, 1, 3)
	bg := tcell.StyleDefault.Background(render.RgbBackground)

	inner := region.Modal(tui.ModalOpts{
		Title:    "strata",
		Bg:       bg,
		BorderFg: bg.Foreground(a.selectedColor()),
		TitleFg:  bg.Foreground(render.RgbHeader),
	})

	items := a.categoryListItems(bg)
	a.modalScroll = tui.ScrollIntoView(a.selected, a.modalScroll, inner.H)
	inner.List(items, a.selected, a.modalScroll, tui.ListOpts{
		CursorStyle: a.cursorStyle(),
	})
}

func (a *App) categoryListItems(bg tcell.Style) []tui.ListItem {
	categories := a.tracker.Store.Ordered()
	items := make([]tui.ListItem, 0, len(categories)+1)

	for i, c := range categories {
		icon := '●'
		if c.KarmaEffect < 0 {
			icon = '◯'
		}
		text := c.Name
		if i == a.selected && a.modalDesc != "" {
			text += " " + a.modalDesc
		}
		items = append(items, tui.ListItem{
			Icon:      icon,
			IconStyle: bg.Foreground(render.PaletteColor(c.ColorIndex)),
			Text:      text,
			Style:     bg.Foreground(render.RgbHeader),
		})
	}

	// Trailing insert row, echoing the name being typed.
	insertText := "+ Add new..."
	if a.newName != "" {
		insertText = a.newName
	}
	items = append(items, tui.ListItem{
		Icon:      '●',
		IconStyle: bg.Foreground(render.PaletteColor(a.colorIndex)),
		Text:      insertText,
		Style:     bg.Foreground(render.RgbHeader),
	})

	return items
}

// cursorStyle paints the selected row with its category color, flipping
// the text dark or light to stay readable.
func (a *App) cursorStyle() tcell.Style {
	if a.isOnInsertRow() {
		return tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	}
	c, ok := a.tracker.Store.ByIndex(a.selected)
	if !ok {
		return tcell.StyleDefault.Reverse(true)
	}
	return tcell.StyleDefault.
		Background(render.PaletteColor(c.ColorIndex)).
		Foreground(textColorForIndex(c.ColorIndex))
}

func (a *App) selectedColor() tcell.Color {
	if a.isOnInsertRow() {
		return render.PaletteColor(a.colorIndex)
	}
	if c, ok := a.tracker.Store.ByIndex(a.selected); ok {
		return render.PaletteColor(c.ColorIndex)
	}
	return tcell.ColorWhite
}

// textColorForIndex picks black or white text against a palette color,
// using perceived brightness.
func textColorForIndex(colorIndex int) tcell.Color {
	if colorIndex < 0 {
		return tcell.ColorBlack
	}
	c := render.Palette[colorIndex%len(render.Palette)]
	brightness := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	if brightness > 128 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}
