package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/strata/domain"
	"github.com/lixenwraith/strata/render"
	"github.com/lixenwraith/strata/tui"
	"github.com/lixenwraith/strata/vmath"
)

const reportMinInnerWidth = 34

// reportRegion picks a compact third-of-screen modal, growing to two
// thirds when the rows or columns would not fit.
func (a *App) reportRegion(root tui.Region, rowCount int) tui.Region {
	compact := modalRegion(root, 1, 3)

	footer := 0
	if a.showHelp {
		footer = 1
	}
	visibleRows := compact.H - 2 - footer
	if rowCount > visibleRows || compact.W-2 < reportMinInnerWidth {
		return modalRegion(root, 2, 3)
	}
	return compact
}

func (a *App) drawReportModal(root tui.Region) {
	summary := a.reportRows()
	a.clampReportSelection(len(summary.Entries))
	logs := a.currentLogs()
	a.clampLogSelection(len(logs))

	rows := len(summary.Entries)
	if a.inLogs {
		rows = len(logs)
	}
	region := a.reportRegion(root, rows)
	bg := tcell.StyleDefault.Background(render.RgbBackground)

	title := "karma"
	if a.inLogs {
		if c, ok := a.tracker.Store.ByID(a.logsCat); ok {
			title = c.Name + " logs"
		}
	}

	inner := region.Modal(tui.ModalOpts{
		Title:    title,
		Hint:     formatKarmaClock(summary.TotalKarmaSeconds),
		Bg:       bg,
		BorderFg: bg.Foreground(a.reportBorderColor(summary)),
		TitleFg:  bg.Foreground(render.RgbHeader),
		HintFg:   bg.Foreground(karmaColor(summary.TotalKarmaSeconds)),
	})

	// Interval label on the top border, period selector on the bottom.
	region.Text(2, 0, " "+intervalLabel(summary.Date)+" ", bg.Foreground(render.RgbHeader))
	a.drawPeriodSelector(region, bg)

	footer := 0
	if a.showHelp {
		footer = 1
	}
	body := inner.Sub(0, 0, inner.W, inner.H-footer)

	if a.inLogs {
		a.drawLogRows(body, logs, bg)
	} else {
		a.drawSummaryRows(body, summary, bg)
	}

	if a.showHelp {
		hint := "↑↓ move · enter logs · d/w/m period · ? help · esc close"
		inner.Sub(0, inner.H-1, inner.W, 1).TextCentered(0, hint, bg.Foreground(render.RgbHint))
	}
}

func (a *App) reportBorderColor(summary domain.KarmaReportSummary) tcell.Color {
	if a.inLogs {
		if idx, ok := a.tracker.Store.ColorIndex(a.logsCat); ok {
			return render.PaletteColor(idx)
		}
		return tcell.ColorWhite
	}
	if a.reportSel < len(summary.Entries) {
		return render.PaletteColor(summary.Entries[a.reportSel].ColorIndex)
	}
	return tcell.ColorWhite
}

func (a *App) drawPeriodSelector(region tui.Region, bg tcell.Style) {
	labels := []struct {
		text   string
		period domain.Period
	}{
		{"day", domain.PeriodToday},
		{"week", domain.PeriodWeek},
		{"month", domain.PeriodMonth},
	}

	total := 0
	for i, l := range labels {
		total += len(l.text)
		if i > 0 {
			total += 3
		}
	}

	x := (region.W - total) / 2
	y := region.H - 1
	for i, l := range labels {
		if i > 0 {
			x += region.Text(x, y, " · ", bg.Foreground(render.RgbHint))
		}
		style := bg.Foreground(render.RgbHint)
		if l.period == a.reportPeriod {
			style = bg.Foreground(render.RgbHeader).Bold(true)
		}
		x += region.Text(x, y, l.text, style)
	}
}

// drawSummaryRows renders one row per category: icon, name, a bar scaled
// to the window's largest total, and the karma-weighted time.
func (a *App) drawSummaryRows(body tui.Region, summary domain.KarmaReportSummary, bg tcell.Style) {
	a.reportScroll = tui.ScrollIntoView(a.reportSel, a.reportScroll, body.H)

	maxElapsed := 0
	for _, e := range summary.Entries {
		if e.ElapsedSeconds > maxElapsed {
			maxElapsed = e.ElapsedSeconds
		}
	}

	const metricW = 9
	nameW := vmath.Min(body.W/3, 20)
	barW := body.W - nameW - metricW - 5

	for y := 0; y < body.H; y++ {
		idx := a.reportScroll + y
		if idx >= len(summary.Entries) {
			break
		}
		e := summary.Entries[idx]

		rowStyle := bg.Foreground(render.RgbHeader)
		if idx == a.reportSel {
			rowStyle = rowStyle.Background(render.RgbSelectionBg)
			body.Sub(0, y, body.W, 1).Fill(rowStyle)
		}

		icon := '●'
		if e.KarmaEffect < 0 {
			icon = '◯'
		}
		body.SetCell(0, y, icon, rowStyle.Foreground(render.PaletteColor(e.ColorIndex)))
		body.Text(2, y, tui.Truncate(e.CategoryName, nameW), rowStyle)

		if barW > 2 && maxElapsed > 0 {
			frac := float64(e.ElapsedSeconds) / float64(maxElapsed)
			body.HBar(nameW+3, y, barW, frac, rowStyle.Foreground(karmaColor(e.KarmaSeconds)))
		}

		body.Sub(0, y, body.W, 1).TextRight(0,
			formatKarmaClock(e.KarmaSeconds),
			rowStyle.Foreground(karmaColor(e.KarmaSeconds)))
	}
}

// drawLogRows renders the drilled-in session log: a sparkline of the
// category's daily totals across the window, then one row per session
// with date, description, the start-end span, and the elapsed time.
func (a *App) drawLogRows(body tui.Region, logs []domain.Session, bg tcell.Style) {
	if len(logs) == 0 {
		body.TextCentered(body.H/2, "no sessions in this window", bg.Foreground(render.RgbHint))
		return
	}

	if body.H >= 4 {
		series := a.categoryDailySeries(a.logsCat, a.reportPeriod)
		sparkStyle := bg
		if idx, ok := a.tracker.Store.ColorIndex(a.logsCat); ok {
			sparkStyle = sparkStyle.Foreground(render.PaletteColor(idx))
		}
		body.Sparkline(1, 0, body.W-2, series, sparkStyle)
		body = body.Sub(0, 1, body.W, body.H-1)
	}

	a.logScroll = tui.ScrollIntoView(a.logSel, a.logScroll, body.H)

	const dateW = 7
	const metricW = 8

	for y := 0; y < body.H; y++ {
		idx := a.logScroll + y
		if idx >= len(logs) {
			break
		}
		row := logs[idx]

		rowStyle := bg.Foreground(render.RgbHeader)
		if idx == a.logSel {
			rowStyle = rowStyle.Background(render.RgbSelectionBg)
			body.Sub(0, y, body.W, 1).Fill(rowStyle)
		}

		body.Text(1, y, tui.Truncate(intervalLabel(row.Date), dateW), rowStyle)

		detail := row.StartTime + "-" + row.EndTime
		if row.Description != "" {
			detail = row.Description + " · " + detail
		}
		detailW := body.W - dateW - metricW - 4
		if detailW > 0 {
			body.Text(dateW+2, y, tui.Truncate(detail, detailW), rowStyle.Foreground(render.RgbHint))
		}

		body.Sub(0, y, body.W, 1).TextRight(0, formatClock(row.ElapsedSeconds), rowStyle)
	}
}

// categoryDailySeries returns one value per day of the report window,
// oldest first, summing the category's recorded seconds for that day.
func (a *App) categoryDailySeries(cat domain.CategoryID, period domain.Period) []float64 {
	days := 1
	switch period {
	case domain.PeriodWeek:
		days = 7
	case domain.PeriodMonth:
		days = 30
	}

	totals := make(map[string]int)
	for _, s := range a.tracker.Sessions {
		if s.CategoryID == cat {
			totals[s.Date] += s.ElapsedSeconds
		}
	}

	series := make([]float64, days)
	for i := 0; i < days; i++ {
		date := time.Now().AddDate(0, 0, -(days - 1 - i)).Format(domain.DateFormat)
		series[i] = float64(totals[date])
	}
	return series
}
