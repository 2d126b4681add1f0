package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/strata/domain"
	"github.com/lixenwraith/strata/vmath"
)

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// formatKarmaClock always carries a sign so gains and losses read at a
// glance in the report header.
func formatKarmaClock(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
	}
	return sign + formatClock(vmath.Abs(seconds))
}

// intervalLabel compacts a report date label for display: a single
// "2006-01-02" date becomes "Jan 2", and a "start..end" range collapses
// shared parts ("Feb 9-15", "Jan 28-Feb 3", "Dec 29, 2025-Jan 4, 2026").
func intervalLabel(raw string) string {
	startRaw, endRaw, isRange := strings.Cut(raw, "..")
	if !isRange {
		d, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return raw
		}
		return shortDate(d)
	}

	start, err1 := time.Parse(domain.DateFormat, startRaw)
	end, err2 := time.Parse(domain.DateFormat, endRaw)
	if err1 != nil || err2 != nil {
		return raw
	}

	switch {
	case start.Year() == end.Year() && start.Month() == end.Month():
		return fmt.Sprintf("%s-%d", shortDate(start), end.Day())
	case start.Year() == end.Year():
		return shortDate(start) + "-" + shortDate(end)
	default:
		return fmt.Sprintf("%s, %d-%s, %d",
			shortDate(start), start.Year(), shortDate(end), end.Year())
	}
}

func shortDate(d time.Time) string {
	return fmt.Sprintf("%s %d", d.Month().String()[:3], d.Day())
}

func wrapPrev(current, length int) int {
	if length == 0 {
		return 0
	}
	if current == 0 {
		return length - 1
	}
	return current - 1
}

func wrapNext(current, length int) int {
	if length == 0 {
		return 0
	}
	if current+1 >= length {
		return 0
	}
	return current + 1
}

func periodPrev(p domain.Period) domain.Period {
	switch p {
	case domain.PeriodToday:
		return domain.PeriodMonth
	case domain.PeriodWeek:
		return domain.PeriodToday
	default:
		return domain.PeriodWeek
	}
}

func periodNext(p domain.Period) domain.Period {
	switch p {
	case domain.PeriodToday:
		return domain.PeriodWeek
	case domain.PeriodWeek:
		return domain.PeriodMonth
	default:
		return domain.PeriodToday
	}
}
