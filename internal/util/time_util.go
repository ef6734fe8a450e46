package util

import (
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the time of day, keeping the calendar date in UTC
func DateOnly(t time.Time) time.Time {
	return DateOnlyIn(t, time.UTC)
}

// DateOnlyIn returns the calendar date of t as seen in loc, as a UTC midnight
func DateOnlyIn(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

func DateGte(t1, t2 time.Time) bool {
	return t1.After(t2) || t1.Format(layout) == t2.Format(layout)
}
