package recurrence

import (
	"strconv"
	"strings"
	"time"

	"companysite/internal/models"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts a full English weekday name in any case.
func ParseWeekday(s string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return wd, ok
}

// ParseDayOfMonth accepts a positive decimal day number.
func ParseDayOfMonth(s string) (int, bool) {
	day, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || day <= 0 {
		return 0, false
	}
	return day, true
}

// NextRun computes the next run date for a schedule last run at lastRun.
// The returned time is midnight of the projected day in lastRun's location.
// ok is false when the frequency is not recognised or dayOrDate cannot be
// parsed for Monthly and Weekly schedules; that is an expected outcome, not
// an error.
func NextRun(lastRun time.Time, freq models.Frequency, dayOrDate *string, holidays HolidaySet) (next time.Time, ok bool) {
	last := DateOf(lastRun)

	var d Date
	switch freq {
	case models.FrequencyDaily:
		d = last.AddDays(1)

	case models.FrequencyNBD:
		d = nextWorkingDay(last.AddDays(1), holidays)

	case models.FrequencyMonthly:
		if dayOrDate == nil {
			return time.Time{}, false
		}
		day, parsed := ParseDayOfMonth(*dayOrDate)
		if !parsed {
			return time.Time{}, false
		}
		y, m := followingMonth(last)
		d = Date{Year: y, Month: m, Day: min(day, daysIn(y, m))}

	case models.FrequencyFBD:
		y, m := followingMonth(last)
		d = nextWorkingDay(Date{Year: y, Month: m, Day: 1}, holidays)

	case models.FrequencyWeekly:
		if dayOrDate == nil {
			return time.Time{}, false
		}
		target, parsed := ParseWeekday(*dayOrDate)
		if !parsed {
			return time.Time{}, false
		}
		d = last.AddDays(1)
		for d.Weekday() != target {
			d = d.AddDays(1)
		}

	default:
		return time.Time{}, false
	}

	return d.In(lastRun.Location()), true
}
