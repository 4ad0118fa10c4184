package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/enums"
)

// IncidentRecord captures a workplace incident involving a worker.
type IncidentRecord struct {
	ID                  uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID           string             `gorm:"column:company_id;type:text;not null;index"`
	WorkerID            uuid.UUID          `gorm:"column:worker_id;type:uuid;not null;index"`
	OccurredAt          time.Time          `gorm:"column:occurred_at;not null"`
	ActivityAtTime      string             `gorm:"column:activity_at_time;not null"`
	ContractType        enums.ContractType `gorm:"column:contract_type;type:text;not null"`
	HoursWorkedBefore   *float64           `gorm:"column:hours_worked_before"`
	ProcedureApplied    string             `gorm:"column:procedure_applied;not null"`
	WorkerStatement     string             `gorm:"column:worker_statement;not null"`
	CompanyObservations *string            `gorm:"column:company_observations"`
	CreatedAt           time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time          `gorm:"column:updated_at;autoUpdateTime"`

	Attachments []IncidentAttachment `gorm:"foreignKey:IncidentID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate generates a UUID primary key if not set.
func (i *IncidentRecord) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
