// Package recurrence projects the next run date of a scheduled report job
// from its last run, its frequency code and the holiday calendar of its region.
package recurrence

import "time"

// Date is a calendar day with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// AddDays moves d by n days, normalising across month and year ends.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

func (d Date) String() string {
	return d.In(time.UTC).Format("2006-01-02")
}

// HolidaySet holds the non-working dates of a single region.
type HolidaySet map[Date]struct{}

// NewHolidaySet builds a set from timestamps; time-of-day is dropped.
func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, t := range dates {
		set[DateOf(t)] = struct{}{}
	}
	return set
}

func (s HolidaySet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

// IsNonWorking reports whether d falls on a weekend or is a holiday in s.
// A nil set means weekends only.
func IsNonWorking(d Date, holidays HolidaySet) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return holidays.Contains(d)
}

// nextWorkingDay returns d itself when it is a working day, otherwise the
// first working day after it.
func nextWorkingDay(d Date, holidays HolidaySet) Date {
	for IsNonWorking(d, holidays) {
		d = d.AddDays(1)
	}
	return d
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// followingMonth returns the year and month after the one containing d.
func followingMonth(d Date) (int, time.Month) {
	if d.Month == time.December {
		return d.Year + 1, time.January
	}
	return d.Year, d.Month + 1
}
