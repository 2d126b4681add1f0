package domain

import (
	"sort"
	"time"
)

// Period selects the date window of a report.
type Period int

const (
	PeriodToday Period = iota
	PeriodWeek         // last 7 days including today
	PeriodMonth        // last 30 days including today
)

// ReportEntry is one category's total within a report window.
type ReportEntry struct {
	CategoryName   string
	ElapsedSeconds int
}

// ReportSummary is a plain time report, none excluded, sorted by time desc.
type ReportSummary struct {
	Date         string // single date or "start..end" range label
	Entries      []ReportEntry
	TotalSeconds int
}

// KarmaReportEntry carries the karma-weighted total for one category.
// Zero-time categories are included so the report always lists everything.
type KarmaReportEntry struct {
	CategoryID     CategoryID
	CategoryName   string
	ColorIndex     int
	ElapsedSeconds int
	KarmaEffect    int8
	KarmaSeconds   int
}

// KarmaReportSummary is the karma view over a report window.
type KarmaReportSummary struct {
	Date              string
	Entries           []KarmaReportEntry
	TotalSeconds      int
	TotalKarmaSeconds int
}

func periodBounds(period Period) (start, end time.Time, label string) {
	today := time.Now()
	switch period {
	case PeriodWeek:
		start = today.AddDate(0, 0, -6)
	case PeriodMonth:
		start = today.AddDate(0, 0, -29)
	default:
		return today, today, today.Format(DateFormat)
	}
	label = start.Format(DateFormat) + ".." + today.Format(DateFormat)
	return start, today, label
}

func inWindow(dateStr string, start, end time.Time) bool {
	d, err := time.Parse(DateFormat, dateStr)
	if err != nil {
		return false
	}
	startDay, _ := time.Parse(DateFormat, start.Format(DateFormat))
	endDay, _ := time.Parse(DateFormat, end.Format(DateFormat))
	return !d.Before(startDay) && !d.After(endDay)
}

// BuildTodayReport aggregates today's sessions, excluding none.
func BuildTodayReport(sessions []Session, categories []Category) ReportSummary {
	today := time.Now()
	return buildReportRange(sessions, categories, today, today, today.Format(DateFormat))
}

// BuildPeriodReport aggregates sessions over a period window.
func BuildPeriodReport(sessions []Session, categories []Category, period Period) ReportSummary {
	if period == PeriodToday {
		return BuildTodayReport(sessions, categories)
	}
	start, end, label := periodBounds(period)
	return buildReportRange(sessions, categories, start, end, label)
}

// BuildReportForDate aggregates sessions for one specific date.
func BuildReportForDate(sessions []Session, categories []Category, date string) ReportSummary {
	d, err := time.Parse(DateFormat, date)
	if err != nil {
		return ReportSummary{}
	}
	return buildReportRange(sessions, categories, d, d, d.Format(DateFormat))
}

func buildReportRange(sessions []Session, categories []Category, start, end time.Time, label string) ReportSummary {
	names := make(map[CategoryID]string)
	for _, c := range categories {
		if c.ID == NoneID || c.Name == NoneName {
			continue
		}
		names[c.ID] = c.Name
	}

	totals := make(map[CategoryID]int)
	for _, s := range sessions {
		if !inWindow(s.Date, start, end) {
			continue
		}
		if _, ok := names[s.CategoryID]; ok {
			totals[s.CategoryID] += s.ElapsedSeconds
		}
	}

	entries := make([]ReportEntry, 0, len(totals))
	total := 0
	for id, secs := range totals {
		entries = append(entries, ReportEntry{CategoryName: names[id], ElapsedSeconds: secs})
		total += secs
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ElapsedSeconds != entries[j].ElapsedSeconds {
			return entries[i].ElapsedSeconds > entries[j].ElapsedSeconds
		}
		return entries[i].CategoryName < entries[j].CategoryName
	})

	return ReportSummary{Date: label, Entries: entries, TotalSeconds: total}
}

// BuildTodayKarmaReport aggregates today's karma view.
func BuildTodayKarmaReport(sessions []Session, categories []Category) KarmaReportSummary {
	today := time.Now()
	return buildKarmaRange(sessions, categories, today, today, today.Format(DateFormat))
}

// BuildPeriodKarmaReport aggregates the karma view over a period window.
func BuildPeriodKarmaReport(sessions []Session, categories []Category, period Period) KarmaReportSummary {
	if period == PeriodToday {
		return BuildTodayKarmaReport(sessions, categories)
	}
	start, end, label := periodBounds(period)
	return buildKarmaRange(sessions, categories, start, end, label)
}

// BuildKarmaReportForDate aggregates the karma view for one specific date.
func BuildKarmaReportForDate(sessions []Session, categories []Category, date string) KarmaReportSummary {
	d, err := time.Parse(DateFormat, date)
	if err != nil {
		return KarmaReportSummary{}
	}
	return buildKarmaRange(sessions, categories, d, d, d.Format(DateFormat))
}

func buildKarmaRange(sessions []Session, categories []Category, start, end time.Time, label string) KarmaReportSummary {
	entries := make([]KarmaReportEntry, 0, len(categories))
	index := make(map[CategoryID]int)
	for _, c := range categories {
		effect := c.KarmaEffect
		if c.ID == NoneID || c.Name == NoneName {
			effect = 0 // none is a neutral counter, never weighted
		}
		index[c.ID] = len(entries)
		entries = append(entries, KarmaReportEntry{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			ColorIndex:   c.ColorIndex,
			KarmaEffect:  effect,
		})
	}

	for _, s := range sessions {
		if !inWindow(s.Date, start, end) {
			continue
		}
		if i, ok := index[s.CategoryID]; ok {
			entries[i].ElapsedSeconds += s.ElapsedSeconds
		}
	}

	total, totalKarma := 0, 0
	for i := range entries {
		entries[i].KarmaSeconds = entries[i].ElapsedSeconds * int(entries[i].KarmaEffect)
		total += entries[i].ElapsedSeconds
		totalKarma += entries[i].KarmaSeconds
	}

	return KarmaReportSummary{
		Date:              label,
		Entries:           entries,
		TotalSeconds:      total,
		TotalKarmaSeconds: totalKarma,
	}
}

// BuildCategoryLogs returns one category's raw session rows inside a report
// window, newest first. The report modal drills into these.
func BuildCategoryLogs(sessions []Session, cat CategoryID, period Period) []Session {
	start, end, _ := periodBounds(period)
	logs := make([]Session, 0)
	for _, s := range sessions {
		if s.CategoryID != cat || !inWindow(s.Date, start, end) {
			continue
		}
		logs = append(logs, s)
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Date != logs[j].Date {
			return logs[i].Date > logs[j].Date
		}
		return logs[i].ID > logs[j].ID
	})
	return logs
}
