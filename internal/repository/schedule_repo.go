package repository

import (
	"context"

	"gorm.io/gorm"

	"companysite/internal/models"
)

// ScheduleRepository reads report schedules and regional holidays.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FetchSchedules returns every schedule ordered by id. NextRunDate is left nil.
func (r *ScheduleRepository) FetchSchedules(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := r.db.WithContext(ctx).Order("Id ASC").Find(&schedules).Error; err != nil {
		return nil, unavailable("fetch schedules", err)
	}
	return schedules, nil
}

// FetchHolidays returns every holiday of every region.
func (r *ScheduleRepository) FetchHolidays(ctx context.Context) ([]models.Holiday, error) {
	var holidays []models.Holiday
	if err := r.db.WithContext(ctx).Order("HolidayRegion ASC, HolidayDate ASC").Find(&holidays).Error; err != nil {
		return nil, unavailable("fetch holidays", err)
	}
	return holidays, nil
}

// FetchSchedulesAndHolidays reads both tables; either failure fails the pair.
func (r *ScheduleRepository) FetchSchedulesAndHolidays(ctx context.Context) ([]models.Schedule, []models.Holiday, error) {
	schedules, err := r.FetchSchedules(ctx)
	if err != nil {
		return nil, nil, err
	}
	holidays, err := r.FetchHolidays(ctx)
	if err != nil {
		return nil, nil, err
	}
	return schedules, holidays, nil
}

// UpsertHolidays inserts holidays that are not already present for their
// region and date. Used by the bootstrap holiday import.
func (r *ScheduleRepository) UpsertHolidays(ctx context.Context, holidays []models.Holiday) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, h := range holidays {
			var count int64
			if err := tx.Model(&models.Holiday{}).
				Where("HolidayRegion = ? AND HolidayDate = ?", h.HolidayRegion, h.HolidayDate).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			row := h
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, unavailable("upsert holidays", err)
	}
	return inserted, nil
}
