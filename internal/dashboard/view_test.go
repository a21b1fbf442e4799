package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companysite/internal/models"
)

// Wednesday.
var today = time.Date(2024, 3, 20, 14, 0, 0, 0, time.UTC)

func at(m time.Month, d, hour int) time.Time {
	return time.Date(2024, m, d, hour, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func fixture() ([]models.Schedule, []models.Holiday, map[string]string) {
	schedules := []models.Schedule{
		{ID: 1, ClientDatabase: "dbA", Frequency: models.FrequencyDaily, LastRunDate: at(3, 19, 10), LastRunState: models.RunStateSuccess},
		{ID: 2, ClientDatabase: "dbA", Frequency: models.FrequencyDaily, LastRunDate: at(3, 19, 10), LastRunState: models.RunStateError},
		{ID: 3, ClientDatabase: "dbA", Frequency: models.FrequencyDaily, LastRunDate: at(3, 19, 23), LastRunState: models.RunStateRunning},
		{ID: 4, ClientDatabase: "dbUK", Frequency: models.FrequencyNBD, LastRunDate: at(3, 19, 6), LastRunState: models.RunStateSuccess},
		{ID: 5, ClientDatabase: "dbUnmapped", Frequency: models.FrequencyNBD, LastRunDate: at(3, 19, 6), LastRunState: models.RunStatePending},
		{ID: 6, ClientDatabase: "dbA", Frequency: models.FrequencyWeekly, DayOrDate: strPtr("Funday"), LastRunDate: at(3, 12, 6), LastRunState: models.RunStateError},
		{ID: 7, ClientDatabase: "dbA", Frequency: models.FrequencyDaily, LastRunDate: at(3, 20, 8), LastRunState: models.RunStateSuccess},
	}
	holidays := []models.Holiday{
		{HolidayDate: at(3, 20, 0), HolidayRegion: "UK"},
		{HolidayDate: at(3, 20, 0), HolidayRegion: ""},
		{HolidayDate: at(3, 21, 0), HolidayRegion: "US"},
	}
	regions := map[string]string{
		"dbA":  "US",
		"dbUK": "UK",
	}
	return schedules, holidays, regions
}

func ids(schedules []models.Schedule) []uint {
	out := make([]uint, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, s.ID)
	}
	return out
}

func TestBuildView_AnnotatesEverySchedule(t *testing.T) {
	schedules, holidays, regions := fixture()

	view := BuildView(schedules, holidays, regions, false, CategoryAll, today)

	require.Len(t, view.Schedules, len(schedules))
	byID := map[uint]models.Schedule{}
	for _, s := range view.Schedules {
		byID[s.ID] = s
	}

	require.NotNil(t, byID[1].NextRunDate)
	assert.Equal(t, at(3, 20, 0), *byID[1].NextRunDate)

	// UK holiday on the 20th pushes the next business day.
	require.NotNil(t, byID[4].NextRunDate)
	assert.Equal(t, at(3, 21, 0), *byID[4].NextRunDate)

	// Unmapped database: no holidays apply, not even empty-region rows.
	require.NotNil(t, byID[5].NextRunDate)
	assert.Equal(t, at(3, 20, 0), *byID[5].NextRunDate)

	assert.Nil(t, byID[6].NextRunDate)

	assert.False(t, view.TodayOnly)
	assert.Equal(t, CategoryAll, view.Filter)
	assert.Equal(t, 0, view.DoneCount)
	assert.Equal(t, 3, view.ToGoCount)
	assert.Equal(t, 1, view.ErrorCount)
}

func TestBuildView_DoesNotMutateInput(t *testing.T) {
	schedules, holidays, regions := fixture()

	_ = BuildView(schedules, holidays, regions, true, CategoryErrors, today)

	for _, s := range schedules {
		assert.Nil(t, s.NextRunDate)
	}
}

func TestBuildView_Filters(t *testing.T) {
	tests := []struct {
		name      string
		todayOnly bool
		category  Category
		want      []uint
	}{
		{name: "all", category: CategoryAll, want: []uint{1, 2, 3, 4, 5, 6, 7}},
		{name: "errors", category: CategoryErrors, want: []uint{2, 6}},
		{name: "running", category: CategoryRunning, want: []uint{3}},
		{name: "to go", category: CategoryToGo, want: []uint{1, 2, 4, 5, 7}},
		{name: "unknown category passes through", category: CategoryUnknown, want: []uint{1, 2, 3, 4, 5, 6, 7}},
		{name: "today only", todayOnly: true, category: CategoryAll, want: []uint{1, 2, 3, 5}},
		{name: "today only errors", todayOnly: true, category: CategoryErrors, want: []uint{2}},
		{name: "today only to go", todayOnly: true, category: CategoryToGo, want: []uint{1, 2, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedules, holidays, regions := fixture()

			view := BuildView(schedules, holidays, regions, tt.todayOnly, tt.category, today)

			assert.Equal(t, tt.want, ids(view.Schedules))
			assert.Equal(t, tt.todayOnly, view.TodayOnly)
			assert.Equal(t, tt.category, view.Filter)
		})
	}
}

func TestBuildView_SummaryIndependentOfFilters(t *testing.T) {
	schedules, holidays, regions := fixture()
	base := BuildView(schedules, holidays, regions, false, CategoryAll, today)

	for _, todayOnly := range []bool{false, true} {
		for _, c := range []Category{CategoryAll, CategoryErrors, CategoryRunning, CategoryToGo} {
			v := BuildView(schedules, holidays, regions, todayOnly, c, today)
			assert.Equal(t, base.DoneCount, v.DoneCount, "%v/%s", todayOnly, c)
			assert.Equal(t, base.ToGoCount, v.ToGoCount, "%v/%s", todayOnly, c)
			assert.Equal(t, base.ErrorCount, v.ErrorCount, "%v/%s", todayOnly, c)
		}
	}
}

func TestBuildView_TodayOnlyIsSubset(t *testing.T) {
	schedules, holidays, regions := fixture()

	for _, c := range []Category{CategoryAll, CategoryErrors, CategoryRunning, CategoryToGo} {
		all := ids(BuildView(schedules, holidays, regions, false, c, today).Schedules)
		todays := ids(BuildView(schedules, holidays, regions, true, c, today).Schedules)
		assert.Subset(t, all, todays, "category %s", c)
	}
}

func TestBuildView_ErrorsOnlyReturnsErrorState(t *testing.T) {
	schedules, holidays, regions := fixture()

	view := BuildView(schedules, holidays, regions, false, CategoryErrors, today)

	require.NotEmpty(t, view.Schedules)
	for _, s := range view.Schedules {
		assert.Equal(t, models.RunStateError, s.LastRunState)
	}
}

func TestSummarize_OverlappingPredicates(t *testing.T) {
	due := at(3, 20, 0)
	tomorrow := at(3, 21, 0)
	schedules := []models.Schedule{
		// Ran successfully today: done, not to go.
		{ID: 1, LastRunDate: at(3, 20, 1), LastRunState: models.RunStateSuccess, NextRunDate: &due},
		// Failed today: to go and error.
		{ID: 2, LastRunDate: at(3, 20, 1), LastRunState: models.RunStateError, NextRunDate: &due},
		// Succeeded yesterday: to go.
		{ID: 3, LastRunDate: at(3, 19, 1), LastRunState: models.RunStateSuccess, NextRunDate: &due},
		// Running: neither.
		{ID: 4, LastRunDate: at(3, 19, 1), LastRunState: models.RunStateRunning, NextRunDate: &due},
		// Not due today: ignored.
		{ID: 5, LastRunDate: at(3, 19, 1), LastRunState: models.RunStateError, NextRunDate: &tomorrow},
		{ID: 6, LastRunDate: at(3, 19, 1), LastRunState: models.RunStateError},
	}

	sum := Summarize(schedules, today)

	assert.Equal(t, Summary{Done: 1, ToGo: 2, Error: 1}, sum)
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"":        CategoryAll,
		"All":     CategoryAll,
		"errors":  CategoryErrors,
		"Running": CategoryRunning,
		"To Go":   CategoryToGo,
		"ToGo":    CategoryToGo,
		"Later":   CategoryUnknown,
		"Errorz":  CategoryUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseCategory(in), "input %q", in)
	}
}

func TestResolveRegion(t *testing.T) {
	regions := map[string]string{"db1": "EU"}

	assert.Equal(t, "EU", ResolveRegion("db1", regions))
	assert.Equal(t, "", ResolveRegion("db2", regions))
	assert.Equal(t, "", ResolveRegion("db1", nil))
}
