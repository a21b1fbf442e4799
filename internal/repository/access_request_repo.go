package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"companysite/internal/models"
)

// AccessRequestRepository stores access-change requests.
type AccessRequestRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAccessRequestRepository(db *gorm.DB) *AccessRequestRepository {
	return &AccessRequestRepository{db: db, now: time.Now}
}

// Submit inserts req as a new, outstanding request. Status and CreateDate
// are always set here; callers cannot choose them.
func (r *AccessRequestRepository) Submit(ctx context.Context, req *models.AccessRequest) error {
	req.ID = 0
	req.Status = models.AccessRequestStatusNew
	req.CreateDate = r.now()
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return unavailable("submit access request", err)
	}
	return nil
}

// List returns requests newest first; outstandingOnly keeps status "new" only.
func (r *AccessRequestRepository) List(ctx context.Context, outstandingOnly bool) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	q := r.db.WithContext(ctx).Model(&models.AccessRequest{})
	if outstandingOnly {
		q = q.Where("Status = ?", models.AccessRequestStatusNew)
	}
	if err := q.Order("CreateDate DESC, Id DESC").Find(&requests).Error; err != nil {
		return nil, unavailable("list access requests", err)
	}
	return requests, nil
}
