package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/strata/constants"
	"github.com/lixenwraith/strata/domain"
)

// handleKey dispatches to the mode-specific handler. Returns false to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	switch a.mode {
	case modeCategoryModal:
		a.handleCategoryModalKey(ev)
		return true
	case modeReportModal:
		a.handleReportModalKey(ev)
		return true
	default:
		return a.handleMainKey(ev)
	}
}

func (a *App) handleMainKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		a.openCategoryModal()
	case tcell.KeyEscape:
		// Punch out: drop back to idle on none.
		a.switchCategory(0)
		a.needRender = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'c':
			a.engine.Reset()
			a.tracker.ResetNoneToday()
			a.persistSessions()
			a.needRender = true
		case 'C':
			a.engine.ClearCategory(domain.NoneID)
			a.needRender = true
		case 'k', 'K':
			a.openReportModal()
		}
	}
	return true
}

func (a *App) openCategoryModal() {
	a.mode = modeCategoryModal
	a.selected = a.activeIndex()
	a.modalScroll = 0
	a.newName = ""
	a.colorIndex = 0
	a.syncModalDescription()
	a.needRender = true
}

func (a *App) closeCategoryModal() {
	a.mode = modeMain
	a.modalDesc = ""
	a.tagIndex = -1
	a.needRender = true
}

func (a *App) openReportModal() {
	a.mode = modeReportModal
	a.reportSel = 0
	a.reportScroll = 0
	a.reportPeriod = domain.PeriodToday
	a.inLogs = false
	a.logSel = 0
	a.logScroll = 0
	a.showHelp = false
	a.needRender = true
}

func (a *App) closeReportModal() {
	a.mode = modeMain
	a.inLogs = false
	a.showHelp = false
	a.needRender = true
}

// isOnInsertRow reports whether the modal cursor sits on the trailing
// "add new category" row.
func (a *App) isOnInsertRow() bool {
	return a.selected >= a.tracker.Store.Len()
}

func (a *App) syncModalDescription() {
	if a.isOnInsertRow() {
		a.modalDesc = ""
	} else if c, ok := a.tracker.Store.ByIndex(a.selected); ok {
		a.modalDesc = c.Description
	}
	a.tagIndex = -1
}

func (a *App) handleCategoryModalKey(ev *tcell.EventKey) {
	defer func() { a.needRender = true }()

	shift := ev.Modifiers()&tcell.ModShift != 0
	totalRows := a.tracker.Store.Len() + 1

	switch ev.Key() {
	case tcell.KeyEscape:
		a.closeCategoryModal()

	case tcell.KeyUp:
		if shift {
			if a.tracker.Store.MoveUp(a.selected) {
				a.selected--
				a.persistCategories()
			}
		} else {
			a.selected = wrapPrev(a.selected, totalRows)
			a.syncModalDescription()
		}

	case tcell.KeyDown:
		if shift {
			if a.tracker.Store.MoveDown(a.selected) {
				a.selected++
				a.persistCategories()
			}
		} else {
			a.selected = wrapNext(a.selected, totalRows)
			a.syncModalDescription()
		}

	case tcell.KeyLeft:
		if shift && !a.isOnInsertRow() && a.selected > 0 {
			a.shiftSelectedColor(-1)
		} else if a.isOnInsertRow() {
			a.colorIndex = (a.colorIndex + constants.PaletteSize - 1) % constants.PaletteSize
		} else if !shift {
			a.cycleSelectedTag(-1)
		}

	case tcell.KeyRight:
		if shift && !a.isOnInsertRow() && a.selected > 0 {
			a.shiftSelectedColor(1)
		} else if a.isOnInsertRow() {
			a.colorIndex = (a.colorIndex + 1) % constants.PaletteSize
		} else if !shift {
			a.cycleSelectedTag(1)
		}

	case tcell.KeyEnter:
		if a.isOnInsertRow() {
			if a.newName != "" {
				a.addCategory()
				a.closeCategoryModal()
			}
		} else {
			if a.tracker.Store.SetDescriptionByIndex(a.selected, a.modalDesc) {
				a.persistCategories()
			}
			a.rememberSelectedTag()
			a.switchCategory(a.selected)
			a.closeCategoryModal()
		}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if a.isOnInsertRow() {
			if a.newName != "" {
				r := []rune(a.newName)
				a.newName = string(r[:len(r)-1])
			}
		} else {
			a.tagIndex = -1
			if a.modalDesc != "" {
				r := []rune(a.modalDesc)
				a.modalDesc = string(r[:len(r)-1])
			}
		}

	case tcell.KeyRune:
		a.handleCategoryModalRune(ev.Rune())
	}
}

// A few runes are commands rather than text: x deletes, +/- set the karma
// effect. They are reserved even when the conditions for the command do
// not hold, so names and descriptions cannot contain them.
func (a *App) handleCategoryModalRune(r rune) {
	onCategory := !a.isOnInsertRow() && a.selected > 0

	switch r {
	case 'x':
		if onCategory {
			a.deleteCategory()
		}
	case '+', '=':
		if onCategory && a.tracker.Store.SetKarmaByIndex(a.selected, 1) {
			a.persistCategories()
		}
	case '-', '_':
		if onCategory && a.tracker.Store.SetKarmaByIndex(a.selected, -1) {
			a.persistCategories()
		}
	default:
		if a.isOnInsertRow() {
			a.newName += string(r)
		} else {
			a.tagIndex = -1
			a.modalDesc += string(r)
		}
	}
}

func (a *App) shiftSelectedColor(direction int) {
	c, ok := a.tracker.Store.ByIndex(a.selected)
	if !ok {
		return
	}
	next := (c.ColorIndex + direction + constants.PaletteSize) % constants.PaletteSize
	if a.tracker.Store.SetColorByIndex(a.selected, next) {
		a.persistCategories()
	}
}

func (a *App) addCategory() {
	name := strings.TrimSpace(a.newName)
	if name == "" {
		return
	}
	if _, ok := a.tracker.Store.Add(name, "", a.colorIndex); !ok {
		return
	}
	a.persistCategories()
	a.switchCategory(a.tracker.Store.Len() - 1)
}

func (a *App) deleteCategory() {
	removed, ok := a.tracker.Store.DeleteByIndex(a.selected)
	if !ok {
		return
	}

	delete(a.tags.TagsByCategory, uint64(removed))
	a.persistTags()

	// Deleting the active category drops the session back to none.
	if removed == a.tracker.ActiveCategoryID() {
		a.tracker.EndSession()
		a.persistSessions()
		a.tracker.SetActiveCategoryByIndex(0)
		a.tracker.StartSession()
	}

	if a.selected > a.tracker.Store.Len() {
		a.selected = a.tracker.Store.Len()
	}
	a.persistCategories()
	a.syncModalDescription()
}

// rememberSelectedTag promotes the modal description to the front of the
// selected category's tag history.
func (a *App) rememberSelectedTag() {
	if a.isOnInsertRow() {
		return
	}
	c, ok := a.tracker.Store.ByIndex(a.selected)
	if !ok {
		return
	}
	tag := strings.TrimSpace(a.modalDesc)
	if tag == "" {
		return
	}

	const maxTagsPerCategory = 24
	tags := a.tags.TagsByCategory[uint64(c.ID)]
	kept := make([]string, 0, len(tags)+1)
	kept = append(kept, tag)
	for _, existing := range tags {
		if existing != tag {
			kept = append(kept, existing)
		}
	}
	if len(kept) > maxTagsPerCategory {
		kept = kept[:maxTagsPerCategory]
	}
	a.tags.TagsByCategory[uint64(c.ID)] = kept

	a.tagIndex = 0
	a.persistTags()
}

// cycleSelectedTag steps the modal description through the selected
// category's tag history.
func (a *App) cycleSelectedTag(direction int) {
	if a.isOnInsertRow() {
		return
	}
	c, ok := a.tracker.Store.ByIndex(a.selected)
	if !ok {
		return
	}
	tags := a.tags.TagsByCategory[uint64(c.ID)]
	if len(tags) == 0 {
		return
	}

	next := 0
	current := a.tagIndex
	if current < 0 {
		// Resume from the tag matching the typed text, if any.
		trimmed := strings.TrimSpace(a.modalDesc)
		for i, tag := range tags {
			if tag == trimmed {
				current = i
				break
			}
		}
	}
	if current >= 0 {
		next = (current + direction + len(tags)) % len(tags)
	} else if direction < 0 {
		next = len(tags) - 1
	}

	a.tagIndex = next
	a.modalDesc = tags[next]
}

func (a *App) handleReportModalKey(ev *tcell.EventKey) {
	defer func() { a.needRender = true }()

	shift := ev.Modifiers()&tcell.ModShift != 0
	summary := a.reportRows()
	a.clampReportSelection(len(summary.Entries))
	logs := a.currentLogs()
	a.clampLogSelection(len(logs))

	switch ev.Key() {
	case tcell.KeyEscape:
		if a.inLogs {
			a.inLogs = false
			a.logSel, a.logScroll = 0, 0
		} else {
			a.closeReportModal()
		}

	case tcell.KeyEnter:
		if a.inLogs {
			a.inLogs = false
			a.logSel, a.logScroll = 0, 0
		} else if a.reportSel < len(summary.Entries) {
			entry := summary.Entries[a.reportSel]
			if entry.CategoryID != domain.NoneID {
				a.inLogs = true
				a.logsCat = entry.CategoryID
				a.logSel, a.logScroll = 0, 0
			}
		}

	case tcell.KeyUp:
		if a.inLogs {
			a.logSel = wrapPrev(a.logSel, len(logs))
		} else {
			a.reportSel = wrapPrev(a.reportSel, len(summary.Entries))
		}

	case tcell.KeyDown:
		if a.inLogs {
			a.logSel = wrapNext(a.logSel, len(logs))
		} else {
			a.reportSel = wrapNext(a.reportSel, len(summary.Entries))
		}

	case tcell.KeyLeft:
		if shift {
			a.setReportPeriod(periodPrev(a.reportPeriod))
		}

	case tcell.KeyRight:
		if shift {
			a.setReportPeriod(periodNext(a.reportPeriod))
		}

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'd', 'D':
			a.setReportPeriod(domain.PeriodToday)
		case 'w', 'W':
			a.setReportPeriod(domain.PeriodWeek)
		case 'm', 'M':
			a.setReportPeriod(domain.PeriodMonth)
		case '?':
			a.showHelp = !a.showHelp
		}
	}
}

func (a *App) setReportPeriod(p domain.Period) {
	a.reportPeriod = p
	if a.inLogs {
		a.clampLogSelection(len(a.currentLogs()))
	} else {
		a.clampReportSelection(len(a.reportRows().Entries))
	}
}

func (a *App) clampReportSelection(rows int) {
	if rows == 0 {
		a.reportSel = 0
	} else if a.reportSel >= rows {
		a.reportSel = rows - 1
	}
}

func (a *App) clampLogSelection(rows int) {
	if rows == 0 {
		a.logSel = 0
	} else if a.logSel >= rows {
		a.logSel = rows - 1
	}
}

func (a *App) reportRows() domain.KarmaReportSummary {
	return domain.BuildPeriodKarmaReport(a.tracker.Sessions, a.tracker.Store.Ordered(), a.reportPeriod)
}

func (a *App) currentLogs() []domain.Session {
	if !a.inLogs {
		return nil
	}
	return domain.BuildCategoryLogs(a.tracker.Sessions, a.logsCat, a.reportPeriod)
}
