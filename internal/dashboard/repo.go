package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
)

// Repository answers the dashboard count queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a dashboard repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) countCreatedBetween(ctx context.Context, model any, companyID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).
		Where("company_id = ? AND created_at >= ? AND created_at < ?", companyID, start, end).
		Count(&count).Error
	return count, err
}

// CountWorkers returns workers registered inside the window.
func (r *Repository) CountWorkers(ctx context.Context, companyID string, start, end time.Time) (int64, error) {
	return r.countCreatedBetween(ctx, &models.Worker{}, companyID, start, end)
}

// CountEppDeliveries returns deliveries logged inside the window.
func (r *Repository) CountEppDeliveries(ctx context.Context, companyID string, start, end time.Time) (int64, error) {
	return r.countCreatedBetween(ctx, &models.EppDelivery{}, companyID, start, end)
}

// CountAudits returns audits recorded inside the window.
func (r *Repository) CountAudits(ctx context.Context, companyID string, start, end time.Time) (int64, error) {
	return r.countCreatedBetween(ctx, &models.AuditRecord{}, companyID, start, end)
}

// CountIncidents returns incidents reported inside the window.
func (r *Repository) CountIncidents(ctx context.Context, companyID string, start, end time.Time) (int64, error) {
	return r.countCreatedBetween(ctx, &models.IncidentRecord{}, companyID, start, end)
}

// CountWorkersWithoutTraining returns active workers still missing their
// initial training, regardless of when they were registered.
func (r *Repository) CountWorkersWithoutTraining(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Worker{}).
		Where("company_id = ? AND status = ? AND initial_sst_training_completed = ?", companyID, "ACTIVE", false).
		Count(&count).Error
	return count, err
}

// CountIncidentsWithoutAttachments returns incidents that carry no photo
// evidence at all.
func (r *Repository) CountIncidentsWithoutAttachments(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.IncidentRecord{}).
		Where("company_id = ?", companyID).
		Where("NOT EXISTS (SELECT 1 FROM incident_attachments a WHERE a.incident_id = incident_records.id)").
		Count(&count).Error
	return count, err
}
