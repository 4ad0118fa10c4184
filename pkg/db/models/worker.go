package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/enums"
)

// Worker represents an employee tracked by a tenant. WorkerCode is a
// per-tenant sequential number assigned at creation time.
type Worker struct {
	ID                          uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID                   string             `gorm:"column:company_id;type:text;not null;index;uniqueIndex:idx_workers_company_code;uniqueIndex:idx_workers_company_dni"`
	WorkerCode                  int                `gorm:"column:worker_code;not null;uniqueIndex:idx_workers_company_code"`
	FullName                    string             `gorm:"column:full_name;not null"`
	DNI                         *string            `gorm:"column:dni;uniqueIndex:idx_workers_company_dni"`
	Status                      enums.WorkerStatus `gorm:"column:status;type:text;not null;default:'ACTIVE'"`
	InitialSSTTrainingCompleted bool               `gorm:"column:initial_sst_training_completed;not null;default:false"`
	InitialSSTTrainingDate      *time.Time         `gorm:"column:initial_sst_training_date"`
	TrainingPhotoURL            *string            `gorm:"column:training_photo_url"`
	CreatedAt                   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate generates a UUID primary key if not set.
func (w *Worker) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
