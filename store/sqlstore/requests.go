package sqlstore

import (
	"context"
	"time"

	"homechef-api/models"

	"gorm.io/gorm"
)

type requestRepo struct {
	db *gorm.DB
}

func (r *requestRepo) Create(ctx context.Context, req *models.Request) error {
	if req.ID == "" {
		req.ID = newID()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(req).Error)
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *requestRepo) List(ctx context.Context) ([]models.Request, error) {
	reqs := []models.Request{}
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&reqs).Error
	return reqs, translate(err)
}

func (r *requestRepo) HasPending(ctx context.Context, email string, requestType models.RequestType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("user_email = ? AND request_type = ? AND request_status = ?", email, requestType, models.RequestPending).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *requestRepo) Resolve(ctx context.Context, id string, status models.RequestStatus, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND request_status = ?", id, models.RequestPending).
		Updates(map[string]interface{}{"request_status": status, "resolved_at": at})
	return affected(res)
}
