// Package finance holds the pure computations over transactions: period
// windows, filtering, budget spend and report aggregation. Nothing here does
// I/O, and every function takes "now" explicitly so results are reproducible.
package finance

import (
	"fmt"
	"time"

	"FINTRACK_BACK-END/internal/models"
)

// Window is a time range. Start is inclusive; End is exclusive unless
// EndInclusive is set. A zero Start or End leaves that side open.
type Window struct {
	Start        time.Time
	End          time.Time
	EndInclusive bool
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if w.End.IsZero() {
		return true
	}
	if w.EndInclusive {
		return !t.After(w.End)
	}
	return t.Before(w.End)
}

// PeriodWindow returns the window a budget period covers relative to now:
// weekly is the trailing seven days, the others are the calendar month,
// quarter or year containing now. Calendar boundaries are taken in UTC,
// the zone transaction dates are stored in.
func PeriodWindow(p models.Period, now time.Time) (Window, error) {
	now = now.UTC()
	y, m, _ := now.Date()
	loc := time.UTC

	switch p {
	case models.PeriodWeekly:
		return Window{Start: now.AddDate(0, 0, -7), End: now, EndInclusive: true}, nil
	case models.PeriodMonthly:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case models.PeriodQuarterly:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start := time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 3, 0)}, nil
	case models.PeriodYearly:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}, nil
	}
	return Window{}, fmt.Errorf("unknown period %q", p)
}

// Timeframe selects the slice of history a report covers.
type Timeframe string

const (
	TimeframeWeek    Timeframe = "week"
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
	TimeframeAll     Timeframe = "all"
)

// ParseTimeframe accepts the timeframe names; empty means all.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(s); tf {
	case TimeframeWeek, TimeframeMonth, TimeframeQuarter, TimeframeYear, TimeframeAll:
		return tf, nil
	case "":
		return TimeframeAll, nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}

// Window returns the range the timeframe covers at now. TimeframeAll is open.
func (tf Timeframe) Window(now time.Time) Window {
	var p models.Period
	switch tf {
	case TimeframeWeek:
		p = models.PeriodWeekly
	case TimeframeMonth:
		p = models.PeriodMonthly
	case TimeframeQuarter:
		p = models.PeriodQuarterly
	case TimeframeYear:
		p = models.PeriodYearly
	default:
		return Window{}
	}
	w, _ := PeriodWindow(p, now)
	return w
}
