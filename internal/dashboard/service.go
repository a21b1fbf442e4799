package dashboard

import (
	"context"
	"time"

	"companysite/internal/models"
)

// ScheduleSource supplies schedules and holidays.
type ScheduleSource interface {
	FetchSchedulesAndHolidays(ctx context.Context) ([]models.Schedule, []models.Holiday, error)
}

// RegionSource supplies the client database to region mapping.
type RegionSource interface {
	FetchClientRegions(ctx context.Context) (map[string]string, error)
}

// Service fetches fresh rows and builds a View from them. Nothing is cached
// between calls.
type Service struct {
	schedules ScheduleSource
	regions   RegionSource
}

func NewService(schedules ScheduleSource, regions RegionSource) *Service {
	return &Service{schedules: schedules, regions: regions}
}

// Load fetches every input and builds the view. If any fetch fails the view
// is not built and the fetch error is returned unchanged.
func (s *Service) Load(ctx context.Context, todayOnly bool, category Category, today time.Time) (View, error) {
	schedules, holidays, err := s.schedules.FetchSchedulesAndHolidays(ctx)
	if err != nil {
		return View{}, err
	}
	regions, err := s.regions.FetchClientRegions(ctx)
	if err != nil {
		return View{}, err
	}
	return BuildView(schedules, holidays, regions, todayOnly, category, today), nil
}
