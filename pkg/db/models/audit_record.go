package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRecord captures a safety audit or inspection carried out by a tenant.
type AuditRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID   string    `gorm:"column:company_id;type:text;not null;index"`
	Activity    string    `gorm:"column:activity;not null"`
	Responsible string    `gorm:"column:responsible;not null"`
	AuditDate   time.Time `gorm:"column:audit_date;not null"`
	Details     *string   `gorm:"column:details"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate generates a UUID primary key if not set.
func (a *AuditRecord) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
