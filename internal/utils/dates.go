package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339. dateOnly reports which form
// was given; plain dates are midnight UTC.
func ParseDate(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if t, err = time.Parse(DateLayout, s); err == nil {
		return t, true, nil
	}
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", s)
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// FormatDate formats t as YYYY-MM-DD in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatTimestamp formats t as RFC3339 in UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
