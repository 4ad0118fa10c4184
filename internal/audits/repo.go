package audits

import (
	"context"

	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
)

// Repository exposes audit record persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an audit repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an audit row.
func (r *Repository) Create(ctx context.Context, audit *models.AuditRecord) (*models.AuditRecord, error) {
	if err := r.db.WithContext(ctx).Create(audit).Error; err != nil {
		return nil, err
	}
	return audit, nil
}

// List returns the tenant's audits, newest first.
func (r *Repository) List(ctx context.Context, companyID string, limit int) ([]models.AuditRecord, error) {
	var rows []models.AuditRecord
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("audit_date DESC, created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
