package epp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
)

// Repository exposes EPP delivery persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a delivery repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a delivery row.
func (r *Repository) Create(ctx context.Context, delivery *models.EppDelivery) (*models.EppDelivery, error) {
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

// List returns the tenant's deliveries, newest first, optionally narrowed to
// one worker.
func (r *Repository) List(ctx context.Context, companyID string, workerID *uuid.UUID, limit int) ([]models.EppDelivery, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if workerID != nil {
		q = q.Where("worker_id = ?", *workerID)
	}

	var rows []models.EppDelivery
	if err := q.Order("delivered_at DESC, created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
