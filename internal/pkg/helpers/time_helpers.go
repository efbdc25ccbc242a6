package helpers

import (
	"fmt"
	"time"
)

// DateOf returns the calendar date of t as seen in loc, as midnight UTC.
// Every DATE value handled by the services goes through it so that dates
// compare equal regardless of the zone they were produced in.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is DateOf(now(), loc)
func Today(now func() time.Time, loc *time.Location) time.Time {
	if now == nil {
		now = time.Now
	}
	return DateOf(now(), loc)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

// FormatDate renders the calendar date of t
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatOptionalDate renders a nullable date, "-" when nil
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatDate(*t)
}

// TruncateDate drops the clock part of t, keeping the calendar date in t's own zone
func TruncateDate(t time.Time) time.Time {
	return DateOf(t, t.Location())
}
