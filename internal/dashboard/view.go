// Package dashboard assembles the schedules dashboard: it annotates every
// schedule with its projected next run, applies the list filters and counts
// today's work.
package dashboard

import (
	"strings"
	"time"

	"companysite/internal/models"
	"companysite/internal/recurrence"
)

// Category narrows the schedule list by run state.
type Category string

const (
	CategoryAll     Category = "All"
	CategoryErrors  Category = "Errors"
	CategoryRunning Category = "Running"
	CategoryToGo    Category = "To Go"
	// CategoryUnknown stands for any unrecognised filter and keeps every row.
	CategoryUnknown Category = "Unknown"
)

// ParseCategory maps a filter value from the UI to a Category.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "all":
		return CategoryAll
	case "errors":
		return CategoryErrors
	case "running":
		return CategoryRunning
	case "to go", "togo":
		return CategoryToGo
	}
	return CategoryUnknown
}

// View is the dashboard state for one request.
type View struct {
	Schedules  []models.Schedule `json:"schedules"`
	TodayOnly  bool              `json:"todayOnly"`
	Filter     Category          `json:"filter"`
	DoneCount  int               `json:"doneCount"`
	ToGoCount  int               `json:"toGoCount"`
	ErrorCount int               `json:"errorCount"`
}

// Summary holds today's counters.
type Summary struct {
	Done  int
	ToGo  int
	Error int
}

// Annotate returns a copy of schedules with NextRunDate projected from each
// schedule's last run and its region's holidays. Schedules whose next run
// cannot be determined keep a nil NextRunDate.
func Annotate(schedules []models.Schedule, holidays []models.Holiday, regions map[string]string) []models.Schedule {
	cals := newCalendars(holidays)

	out := make([]models.Schedule, len(schedules))
	for i, s := range schedules {
		region := ResolveRegion(s.ClientDatabase, regions)
		s.NextRunDate = nil
		if next, ok := recurrence.NextRun(s.LastRunDate, s.Frequency, s.DayOrDate, cals.forRegion(region)); ok {
			s.NextRunDate = &next
		}
		out[i] = s
	}
	return out
}

// BuildView projects next runs for every schedule, filters the list and
// computes today's summary. today is the caller's current date; only its
// calendar day is used.
//
// The summary counts every schedule due today regardless of todayOnly and
// category, so the counters may cover rows the returned list hides.
func BuildView(schedules []models.Schedule, holidays []models.Holiday, regions map[string]string, todayOnly bool, category Category, today time.Time) View {
	annotated := Annotate(schedules, holidays, regions)
	day := recurrence.DateOf(today)

	list := annotated
	if todayOnly {
		list = filter(list, func(s models.Schedule) bool { return dueOn(s, day) })
	}
	list = FilterCategory(list, category, today)

	sum := Summarize(annotated, today)
	return View{
		Schedules:  list,
		TodayOnly:  todayOnly,
		Filter:     category,
		DoneCount:  sum.Done,
		ToGoCount:  sum.ToGo,
		ErrorCount: sum.Error,
	}
}

// FilterCategory keeps the schedules matching category. Schedules must
// already carry their NextRunDate.
func FilterCategory(schedules []models.Schedule, category Category, today time.Time) []models.Schedule {
	day := recurrence.DateOf(today)

	switch category {
	case CategoryErrors:
		return filter(schedules, func(s models.Schedule) bool {
			return s.LastRunState == models.RunStateError
		})
	case CategoryRunning:
		return filter(schedules, func(s models.Schedule) bool {
			return s.LastRunState == models.RunStateRunning
		})
	case CategoryToGo:
		return filter(schedules, func(s models.Schedule) bool {
			return s.NextRunDate != nil &&
				!recurrence.DateOf(*s.NextRunDate).Before(day) &&
				s.LastRunState != models.RunStateRunning
		})
	default:
		return schedules
	}
}

// Summarize counts the schedules due today. The done and to-go predicates
// overlap by construction and must not be collapsed into a partition.
func Summarize(schedules []models.Schedule, today time.Time) Summary {
	day := recurrence.DateOf(today)

	var sum Summary
	for _, s := range schedules {
		if !dueOn(s, day) {
			continue
		}
		lastRun := recurrence.DateOf(s.LastRunDate)
		if s.LastRunState == models.RunStateSuccess && lastRun == day {
			sum.Done++
		}
		if s.LastRunState != models.RunStateRunning &&
			(lastRun.Before(day) || s.LastRunState != models.RunStateSuccess) {
			sum.ToGo++
		}
		if s.LastRunState == models.RunStateError {
			sum.Error++
		}
	}
	return sum
}

func dueOn(s models.Schedule, day recurrence.Date) bool {
	return s.NextRunDate != nil && recurrence.DateOf(*s.NextRunDate) == day
}

func filter(schedules []models.Schedule, keep func(models.Schedule) bool) []models.Schedule {
	out := make([]models.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
