package repository

import (
	"context"

	"gorm.io/gorm"

	"companysite/internal/models"
)

// ReportRepository reads the report catalog.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) FetchReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).Order("Title ASC").Find(&reports).Error; err != nil {
		return nil, unavailable("fetch reports", err)
	}
	return reports, nil
}
