package workers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
)

// ErrDuplicateDNI signals another worker in the tenant already has the DNI.
var ErrDuplicateDNI = errors.New("duplicate dni in company")

// Repository exposes worker persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a worker repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithNextCode inserts the worker inside one transaction, assigning
// the next sequential per-tenant worker code. The tenant's company row is
// locked FOR UPDATE so concurrent creates in the same company serialize and
// cannot observe the same maximum.
func (r *Repository) CreateWithNextCode(ctx context.Context, worker *models.Worker) (*models.Worker, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&company, "id = ?", worker.CompanyID).Error; err != nil {
			return err
		}

		if worker.DNI != nil {
			var count int64
			if err := tx.Model(&models.Worker{}).
				Where("company_id = ? AND dni = ?", worker.CompanyID, *worker.DNI).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateDNI
			}
		}

		var maxCode int
		if err := tx.Model(&models.Worker{}).
			Where("company_id = ?", worker.CompanyID).
			Select("COALESCE(MAX(worker_code), 0)").
			Scan(&maxCode).Error; err != nil {
			return err
		}
		worker.WorkerCode = maxCode + 1

		return tx.Create(worker).Error
	})
	if err != nil {
		return nil, err
	}
	return worker, nil
}

// FindInCompany returns the worker only when it belongs to the tenant.
func (r *Repository) FindInCompany(ctx context.Context, companyID string, id uuid.UUID) (*models.Worker, error) {
	var row models.Worker
	if err := r.db.WithContext(ctx).
		First(&row, "id = ? AND company_id = ?", id, companyID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns the tenant's workers ordered by code.
func (r *Repository) List(ctx context.Context, companyID string, limit int) ([]models.Worker, error) {
	var rows []models.Worker
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("worker_code ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DNITakenByOther reports whether another worker in the tenant holds the DNI.
func (r *Repository) DNITakenByOther(ctx context.Context, companyID, dni string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Worker{}).
		Where("company_id = ? AND dni = ? AND id <> ?", companyID, dni, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists the mutable worker fields.
func (r *Repository) Update(ctx context.Context, worker *models.Worker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}
