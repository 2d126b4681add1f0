package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/strata/domain"
	"github.com/lixenwraith/strata/render"
	"github.com/lixenwraith/strata/tui"
)

func (a *App) draw() {
	a.screen.Clear()
	root := tui.NewRegion(a.screen)

	a.drawStatusBar(root)

	frame := a.renderer.Render(a.engine.Grid(), a.tracker.Store)
	render.Blit(a.screen, frame, 0, 1)

	a.drawHintBar(root)

	switch a.mode {
	case modeCategoryModal:
		a.drawCategoryModal(root)
	case modeReportModal:
		a.drawReportModal(root)
	}

	a.screen.Show()
}

// drawStatusBar renders the top chrome: active category (or the idle
// face) on the left, the session timer in the center, and the karma
// adjusted total on the right.
func (a *App) drawStatusBar(root tui.Region) {
	activeIdx := a.activeIndex()
	active, _ := a.tracker.Store.ByIndex(activeIdx)

	fill := tcell.StyleDefault.
		Background(render.RgbStatusBar).
		Foreground(render.RgbStatusText)

	var left []tui.Segment
	if activeIdx == 0 {
		left = append(left, tui.Segment{
			Text:  " " + a.idleFace() + " ",
			Style: fill.Foreground(render.RgbFace).Bold(true),
		})
	} else {
		left = append(left, tui.Segment{
			Text:  " " + active.Name + " ",
			Style: fill.Foreground(render.PaletteColor(active.ColorIndex)).Bold(true),
		})
		if active.Description != "" {
			left = append(left, tui.Segment{
				Text:  active.Description + " ",
				Style: fill.Italic(true),
			})
		}
	}
	root.StatusBar(0, left, fill)

	// Center: the running session timer, or the wall clock while idle.
	var timer string
	if activeIdx == 0 || !a.tracker.SessionRunning() {
		timer = time.Now().Format(domain.ClockFormat)
	} else {
		timer = formatClock(int(time.Since(a.tracker.SessionStart()).Seconds()))
	}
	root.Sub(0, 0, root.W, 1).TextCentered(0, timer, fill)

	// Right: karma-adjusted total while idle, category total while working.
	var total string
	var totalStyle tcell.Style
	if activeIdx == 0 {
		karma := a.karmaAdjustedToday()
		total = formatKarmaClock(karma)
		totalStyle = fill.Foreground(karmaColor(karma))
	} else {
		seconds := a.tracker.CategoryTime(active.Name)
		if a.tracker.SessionRunning() {
			seconds += int(time.Since(a.tracker.SessionStart()).Seconds())
		}
		total = formatClock(seconds)
		totalStyle = fill
	}
	root.Sub(0, 0, root.W, 1).TextRight(0, total+" ", totalStyle)
}

func (a *App) drawHintBar(root tui.Region) {
	fill := tcell.StyleDefault.
		Background(render.RgbBackground).
		Foreground(render.RgbHint)
	root.StatusBar(root.H-1, []tui.Segment{
		{Text: " enter categories · k karma · esc idle · c clear · q quit", Style: fill},
	}, fill)
}

// karmaAdjustedToday sums today's tracked time weighted by each
// category's karma effect, none excluded.
func (a *App) karmaAdjustedToday() int {
	summary := domain.BuildTodayKarmaReport(a.tracker.Sessions, a.tracker.Store.Ordered())
	return summary.TotalKarmaSeconds
}

func karmaColor(seconds int) tcell.Color {
	switch {
	case seconds < 0:
		return render.RgbKarmaBad
	case seconds > 0:
		return render.RgbKarmaGood
	default:
		return render.RgbHint
	}
}
